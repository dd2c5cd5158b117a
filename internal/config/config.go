package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration. Values come from an optional YAML file;
// environment variables override YAML.
type Config struct {
	// DataDir is the directory holding all persisted state.
	DataDir string `yaml:"data_dir" env:"TRELLOMIZE_DATA_DIR" env-default:"."`

	// UsersFile and ProjectsFile are the JSON snapshot file names, relative
	// to DataDir. Only used by the json backend.
	UsersFile    string `yaml:"users_file" env:"TRELLOMIZE_USERS_FILE" env-default:"users.json"`
	ProjectsFile string `yaml:"projects_file" env:"TRELLOMIZE_PROJECTS_FILE" env-default:"projects.json"`

	// AuditLog is the audit sink file name, relative to DataDir.
	AuditLog string `yaml:"audit_log" env:"TRELLOMIZE_AUDIT_LOG" env-default:"app.log"`

	// StoreBackend selects snapshot persistence: "json" or "sqlite".
	StoreBackend string `yaml:"store_backend" env:"TRELLOMIZE_STORE" env-default:"json"`

	// SQLiteFile is the database file name, relative to DataDir. Only used
	// by the sqlite backend.
	SQLiteFile string `yaml:"sqlite_file" env:"TRELLOMIZE_SQLITE_FILE" env-default:"trellomize.db"`

	// AdminFile holds admin accounts created by the admin tool.
	AdminFile string `yaml:"admin_file" env:"TRELLOMIZE_ADMIN_FILE" env-default:"admin.json"`
}

// Load reads configuration from the YAML file at path if it exists,
// otherwise from environment variables alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	}

	switch cfg.StoreBackend {
	case BackendJSON, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %q or %q)", cfg.StoreBackend, BackendJSON, BackendSQLite)
	}

	return &cfg, nil
}

// UsersPath returns the users snapshot path.
func (c *Config) UsersPath() string { return filepath.Join(c.DataDir, c.UsersFile) }

// ProjectsPath returns the projects snapshot path.
func (c *Config) ProjectsPath() string { return filepath.Join(c.DataDir, c.ProjectsFile) }

// AuditLogPath returns the audit sink path.
func (c *Config) AuditLogPath() string { return filepath.Join(c.DataDir, c.AuditLog) }

// SQLitePath returns the sqlite database path.
func (c *Config) SQLitePath() string { return filepath.Join(c.DataDir, c.SQLiteFile) }

// AdminPath returns the admin accounts file path.
func (c *Config) AdminPath() string { return filepath.Join(c.DataDir, c.AdminFile) }
