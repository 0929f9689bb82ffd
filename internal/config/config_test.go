package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NOTIFY_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.Http.Port)
	assert.Equal(t, "csv", cfg.Storage.Driver)
	assert.Equal(t, "sidewalk_hazards.csv", cfg.Storage.CSVPath)
	assert.Equal(t, "uploaded_images", cfg.Storage.ImageDir)
	assert.Equal(t, 10*time.Second, cfg.Http.ShutdownTimeout)
	assert.Equal(t, 1000, cfg.Maps.CacheSize)
	assert.Equal(t, "reports:events", cfg.Notify.QueueKey)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("MAPS_TIMEOUT", "2s")
	t.Setenv("NOTIFY_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, ":9090", cfg.Http.Port)
	assert.Equal(t, 2*time.Second, cfg.Maps.Timeout)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "8080", "NOTIFY_DISABLED": "true"}},
		{"bad driver", map[string]string{"STORAGE_DRIVER": "mongo", "NOTIFY_DISABLED": "true"}},
		{"webhook url required", map[string]string{"NOTIFY_DISABLED": "false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
