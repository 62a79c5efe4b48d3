package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	ServerHost    string
	ServerPort    string
	StorageDriver string
	DataDir       string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RabbitURL     string
	InventoryFile string

	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// Load reads the environment, after loading a .env file if one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("config.dotenv", "error", err)
	}

	return &Config{
		ServerHost:    getEnv("SERVER_HOST", ""),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		DataDir:       getEnv("DATA_DIR", "."),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "hotel_db"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RabbitURL:     getEnv("RABBITMQ_URL", ""),
		InventoryFile: getEnv("INVENTORY_FILE", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverFile:
		if c.DataDir == "" {
			errs = append(errs, errors.New("DATA_DIR must not be empty"))
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", c.StorageDriver, DriverFile, DriverPostgres))
	}
	if c.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT must not be empty"))
	}
	return errors.Join(errs...)
}

// Inventory returns the seeding inventory: the groups in InventoryFile when
// set, otherwise the built-in default.
func (c *Config) Inventory() ([]models.InventoryGroup, error) {
	if c.InventoryFile == "" {
		return models.DefaultInventory(), nil
	}
	return LoadInventory(c.InventoryFile)
}

type inventoryFile struct {
	Rooms []inventoryGroup `yaml:"rooms"`
}

type inventoryGroup struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"`
	Rate     string `yaml:"rate"`
}

// LoadInventory parses a YAML file of the form
//
//	rooms:
//	  - category: STANDARD
//	    count: 3
//	    rate: "2000"
func LoadInventory(path string) ([]models.InventoryGroup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory %s: %w", path, err)
	}
	return ParseInventory(raw)
}

func ParseInventory(raw []byte) ([]models.InventoryGroup, error) {
	var f inventoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	if len(f.Rooms) == 0 {
		return nil, errors.New("inventory: no room groups")
	}

	groups := make([]models.InventoryGroup, 0, len(f.Rooms))
	for i, g := range f.Rooms {
		category, err := models.ParseCategory(strings.ToUpper(strings.TrimSpace(g.Category)))
		if err != nil {
			return nil, fmt.Errorf("inventory group %d: %w", i+1, err)
		}
		if g.Count <= 0 {
			return nil, fmt.Errorf("inventory group %d: count must be positive, got %d", i+1, g.Count)
		}
		rate, err := models.ParseRate(g.Rate)
		if err != nil {
			return nil, fmt.Errorf("inventory group %d: %w", i+1, err)
		}
		groups = append(groups, models.InventoryGroup{Category: category, Count: g.Count, Rate: rate})
	}
	return groups, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
