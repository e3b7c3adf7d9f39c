package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MarketAdvisor/internal/config"
)

func TestStoreDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.SQLitePath = "data/test.db"
	cfg.Database.PostgresURL = "postgres://localhost/advisor"

	cfg.Database.Driver = "sqlite"
	assert.Equal(t, "data/test.db", storeDSN(cfg))

	cfg.Database.Driver = "postgres"
	assert.Equal(t, "postgres://localhost/advisor", storeDSN(cfg))
}

func TestNewFetcher(t *testing.T) {
	cfg := &config.Config{}

	cfg.DataSource.Provider = "mock"
	assert.Equal(t, "mock", newFetcher(cfg).Name())

	cfg.DataSource.Provider = "yahoo"
	assert.Equal(t, "yahoo", newFetcher(cfg).Name())
}
