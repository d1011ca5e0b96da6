package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

func TestSetupJobs(t *testing.T) {
	cm := NewCronManager(store.NewWithDB(store.BackendNone, nil, nil, nil), nil)

	require.NoError(t, cm.SetupJobs())

	assert.Len(t, cm.cron.Entries(), 2, "expiry sweep and connectivity probe")
}

func TestStartStop(t *testing.T) {
	cm := NewCronManager(store.NewWithDB(store.BackendNone, nil, nil, nil), nil)
	require.NoError(t, cm.SetupJobs())

	cm.Start()
	cm.Stop()
}
