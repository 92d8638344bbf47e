package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reelkit/reelkit-backend/internal/data/db"
	"github.com/reelkit/reelkit-backend/internal/pkg/envutil"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
)

type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	DBDriver   string `yaml:"db_driver"`
	SQLitePath string `yaml:"sqlite_path"`

	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresName     string `yaml:"postgres_name"`

	// EncryptionKey enables at-rest encryption of chat transcripts and
	// user-selected fields. Empty disables it.
	EncryptionKey string `yaml:"encryption_key"`
}

// LoadConfig reads from the environment, then lets an optional yaml file
// named by CONFIG_FILE override whatever the environment set.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:             envutil.Str("PORT", "8080"),
		LogMode:          envutil.Str("LOG_MODE", "development"),
		DBDriver:         envutil.Str("DB_DRIVER", "sqlite"),
		SQLitePath:       envutil.Str("SQLITE_PATH", "data/reelkit.db"),
		PostgresHost:     envutil.Str("POSTGRES_HOST", "localhost"),
		PostgresPort:     envutil.Str("POSTGRES_PORT", "5432"),
		PostgresUser:     envutil.Str("POSTGRES_USER", "reelkit"),
		PostgresPassword: envutil.Str("POSTGRES_PASSWORD", ""),
		PostgresName:     envutil.Str("POSTGRES_NAME", "reelkit"),
		EncryptionKey:    envutil.Str("ENCRYPTION_KEY", ""),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
		log.Info("Config file applied", "path", path)
	}

	return cfg, nil
}

func (c Config) DBConfig() db.Config {
	return db.Config{
		Driver:           c.DBDriver,
		SQLitePath:       c.SQLitePath,
		PostgresHost:     c.PostgresHost,
		PostgresPort:     c.PostgresPort,
		PostgresUser:     c.PostgresUser,
		PostgresPassword: c.PostgresPassword,
		PostgresName:     c.PostgresName,
	}
}
