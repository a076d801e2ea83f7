package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "data/receipts", cfg.ReceiptDir)
	assert.Equal(t, "22522", cfg.AdminPIN)
	assert.Equal(t, 15*time.Minute, cfg.AdminSessionTTL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestFromEnv_Postgres(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORAGE_DRIVER": "Postgres",
		"DB_HOST":        "db",
		"DB_USER":        "shop",
		"DB_PASSWORD":    "pw",
		"DB_NAME":        "billing",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "host=db user=shop password=pw dbname=billing port=5432 sslmode=disable", cfg.DatabaseURL)
}

func TestFromEnv_DatabaseURLWins(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"STORAGE_DRIVER": "postgres",
		"DATABASE_URL":   "postgres://x",
		"DB_HOST":        "ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"STORAGE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = FromEnv(env(map[string]string{"ADMIN_SESSION_TTL": "soon"}))
	assert.Error(t, err)

	_, err = FromEnv(env(map[string]string{"ADMIN_SESSION_TTL": "-1m"}))
	assert.Error(t, err)
}

func TestFromEnv_CustomDirs(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DATA_DIR": "/var/shop", "RECEIPT_DIR": "/srv/bills", "ADMIN_PIN": "1111"}))
	require.NoError(t, err)
	assert.Equal(t, "/var/shop", cfg.DataDir)
	assert.Equal(t, "/srv/bills", cfg.ReceiptDir)
	assert.Equal(t, "1111", cfg.AdminPIN)
}
