package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SERVER_PORT", "STORAGE_DRIVER", "DATA_DIR", "RABBITMQ_URL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Empty(t, cfg.RabbitURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "stay")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=stay")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATA_DIR=/var/lib/stay\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("DATA_DIR")

	cfg := Load()

	assert.Equal(t, "/var/lib/stay", cfg.DataDir)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{ServerPort: "8080", StorageDriver: "sqlite"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestInventory_DefaultWhenUnset(t *testing.T) {
	cfg := &Config{}

	groups, err := cfg.Inventory()

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].Count)
}

func TestParseInventory(t *testing.T) {
	raw := []byte(`
rooms:
  - category: standard
    count: 4
    rate: "1800.50"
  - category: DELUXE
    count: 1
    rate: "4000"
`)

	groups, err := ParseInventory(raw)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, models.CategoryStandard, groups[0].Category)
	assert.Equal(t, 4, groups[0].Count)
	assert.True(t, decimal.RequireFromString("1800.50").Equal(groups[0].Rate))
	assert.Equal(t, models.CategoryDeluxe, groups[1].Category)
}

func TestParseInventory_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":        "rooms: []\n",
		"category":     "rooms:\n  - {category: SUITE, count: 1, rate: \"10\"}\n",
		"any category": "rooms:\n  - {category: ANY, count: 1, rate: \"10\"}\n",
		"count":        "rooms:\n  - {category: STANDARD, count: 0, rate: \"10\"}\n",
		"rate":         "rooms:\n  - {category: STANDARD, count: 1, rate: \"cheap\"}\n",
		"negative":     "rooms:\n  - {category: STANDARD, count: 1, rate: \"-1\"}\n",
		"precision":    "rooms:\n  - {category: STANDARD, count: 1, rate: \"2000.005\"}\n",
		"yaml":         "rooms: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInventory([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestParseInventory_RateBeyondCents(t *testing.T) {
	_, err := ParseInventory([]byte("rooms:\n  - {category: DELUXE, count: 2, rate: \"3500.125\"}\n"))

	assert.ErrorIs(t, err, models.ErrInvalidRate)
	assert.Contains(t, err.Error(), "inventory group 1")
}

func TestLoadInventory_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rooms:\n  - {category: DELUXE, count: 2, rate: \"3500\"}\n"), 0o600))

	groups, err := (&Config{InventoryFile: path}).Inventory()

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)

	_, err = LoadInventory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
