package service_test

import (
	"context"
	"io"
	"testing"

	"hospital-management-api/internal/mocks"
	"hospital-management-api/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newAuditService(store *mocks.Store) service.AuditService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return service.NewAuditService(log, store.AuditLogRepository())
}

func TestAuditServiceRecordsValues(t *testing.T) {
	store := mocks.NewStore()
	audit := newAuditService(store)
	userID := uint(7)

	err := audit.LogUpdate(context.Background(), nil, &userID, "doctor.update", "doctor", 3,
		&sample{ID: 3, Name: "Dr. House"}, &sample{ID: 3, Name: "Dr. Gregory House"})
	require.NoError(t, err)

	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, "doctor.update", entry.Action)
	assert.Equal(t, uint(7), *entry.UserID)
	assert.Equal(t, "doctor", entry.Metadata["entity"])
	assert.Equal(t, "3", entry.Metadata["entity_id"])

	oldValue, ok := entry.Metadata["old_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Dr. House", oldValue["name"])
	newValue, ok := entry.Metadata["new_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Dr. Gregory House", newValue["name"])
}

func TestAuditServiceCreateAndDelete(t *testing.T) {
	store := mocks.NewStore()
	audit := newAuditService(store)

	require.NoError(t, audit.LogCreate(context.Background(), nil, nil, "patient.create", "patient", 1, sample{ID: 1, Name: "Jane"}))
	require.NoError(t, audit.LogDelete(context.Background(), nil, nil, "patient.delete", "patient", 1, sample{ID: 1, Name: "Jane"}))

	logs := store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Nil(t, logs[0].UserID)
	assert.Nil(t, logs[0].Metadata["old_value"])
	assert.NotNil(t, logs[0].Metadata["new_value"])
	assert.NotNil(t, logs[1].Metadata["old_value"])
	assert.Nil(t, logs[1].Metadata["new_value"])
}

func TestAuditServicePropagatesStoreErrors(t *testing.T) {
	store := mocks.NewStore()
	store.FailWith = assert.AnError
	audit := newAuditService(store)

	err := audit.LogCreate(context.Background(), nil, nil, "patient.create", "patient", 1, sample{ID: 1})
	assert.ErrorIs(t, err, assert.AnError)
}
