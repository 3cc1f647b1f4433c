package main

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_FILEPATH", "/tmp/subscriptions.db")
		t.Setenv("LISTEN_ADDR", "")
		t.Setenv("MAX_TEXT_LENGTH", "")
		t.Setenv("MAX_CELLS", "")
		t.Setenv("WEBHOOK_WORKERS", "")

		config, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, Config{
			DatabaseFilepath: "/tmp/subscriptions.db",
			ListenAddr:       DefaultListenAddr,
			WebhookWorkers:   WebhookWorkersCount,
		}, config)
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("DATABASE_FILEPATH", "db.db")
		t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
		t.Setenv("MAX_TEXT_LENGTH", "19")
		t.Setenv("MAX_CELLS", "1000")
		t.Setenv("WEBHOOK_WORKERS", "2")

		config, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, Config{
			DatabaseFilepath: "db.db",
			ListenAddr:       "127.0.0.1:9000",
			MaxTextLength:    19,
			MaxCells:         1000,
			WebhookWorkers:   2,
		}, config)
	})

	t.Run("missed_database", func(t *testing.T) {
		t.Setenv("DATABASE_FILEPATH", "")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, DatabaseFilepathMissedError)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("DATABASE_FILEPATH", "db.db")
		for _, name := range []string{"MAX_TEXT_LENGTH", "MAX_CELLS", "WEBHOOK_WORKERS"} {
			t.Setenv("MAX_TEXT_LENGTH", "")
			t.Setenv("MAX_CELLS", "")
			t.Setenv("WEBHOOK_WORKERS", "")
			t.Setenv(name, "-1")

			_, err := LoadConfig()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), name)

			t.Setenv(name, "many")
			_, err = LoadConfig()
			assert.Error(t, err)
		}
	})
}
