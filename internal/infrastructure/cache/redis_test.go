package cache

import (
	"testing"

	"hospital-management-api/config"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientUnreachable(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	client, err := NewRedisClient(config.RedisConfig{Host: "127.0.0.1", Port: "1"}, log)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Empty(t, hook.AllEntries())
}
