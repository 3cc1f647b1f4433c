package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const DefaultListenAddr = ":8080"

var DatabaseFilepathMissedError = errors.New("DATABASE_FILEPATH env variable is required")

type Config struct {
	DatabaseFilepath string
	ListenAddr       string
	MaxTextLength    int
	MaxCells         int
	WebhookWorkers   int
}

func LoadConfig() (config Config, err error) {
	config = Config{
		DatabaseFilepath: os.Getenv("DATABASE_FILEPATH"),
		ListenAddr:       os.Getenv("LISTEN_ADDR"),
	}

	if config.DatabaseFilepath == "" {
		err = DatabaseFilepathMissedError
		return
	}

	if config.ListenAddr == "" {
		config.ListenAddr = DefaultListenAddr
	}

	if config.MaxTextLength, err = readIntEnv("MAX_TEXT_LENGTH", 0); err != nil {
		return
	}

	if config.MaxCells, err = readIntEnv("MAX_CELLS", 0); err != nil {
		return
	}

	config.WebhookWorkers, err = readIntEnv("WEBHOOK_WORKERS", WebhookWorkersCount)
	return
}

func readIntEnv(name string, defaultValue int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s should be a non negative integer, got `%s`", name, raw)
	}
	return value, nil
}
