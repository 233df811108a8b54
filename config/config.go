package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig echo binding configuration
type WebConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
	AllowOrigins string `yaml:"allow_origins"` // comma separated
}

// FiberConfig fiber binding configuration
type FiberConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	AllowOrigins string `yaml:"allow_origins"`
}

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"` // database name, or file path for sqlite
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	Dsn      string `yaml:"dsn"` // overrides the discrete fields when set
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// StorefrontConfig product grid page configuration
type StorefrontConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ApiBaseURL string `yaml:"api_base_url"` // empty means the local echo binding
	Timeout    int    `yaml:"timeout"`      // seconds
}

type AppConfig struct {
	System     SysConfig        `yaml:"system"`
	Web        WebConfig        `yaml:"web"`
	Fiber      FiberConfig      `yaml:"fiber"`
	Database   DBConfig         `yaml:"database"`
	Logger     LogConfig        `yaml:"logger"`
	Storefront StorefrontConfig `yaml:"storefront"`
}

// GetLogDir returns the log directory under the working directory
func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

// GetDataDir returns the data directory under the working directory
func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ProductCatalog",
		Location: "UTC",
		Workdir:  "/var/productcatalog",
		Debug:    true,
	},
	Web: WebConfig{
		Host:         "0.0.0.0",
		Port:         3000,
		ReadTimeout:  30,
		WriteTimeout: 30,
		AllowOrigins: "*",
	},
	Fiber: FiberConfig{
		Enabled:      true,
		Host:         "0.0.0.0",
		Port:         3001,
		ReadTimeout:  30,
		WriteTimeout: 30,
		AllowOrigins: "*",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "catalog",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  20,
		IdleConn: 5,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/productcatalog/logs/catalog.log",
	},
	Storefront: StorefrontConfig{
		Enabled: true,
		Timeout: 10,
	},
}

// LoadConfig reads the yaml configuration file, falling back to the
// defaults when cfile is empty or missing, then applies environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	// .env is optional, variables already set in the process win
	_ = godotenv.Load()

	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = os.Getenv("CATALOG_CONFIG")
	}
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
			return nil, errors.Errorf("config file %s not found", cfile)
		case err != nil:
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", cfile)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("CATALOG_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("CATALOG_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("CATALOG_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("CATALOG_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("CATALOG_WEB_PORT", &cfg.Web.Port)
	setEnvValue("CATALOG_WEB_ALLOW_ORIGINS", &cfg.Web.AllowOrigins)

	setEnvBoolValue("CATALOG_FIBER_ENABLED", &cfg.Fiber.Enabled)
	setEnvValue("CATALOG_FIBER_HOST", &cfg.Fiber.Host)
	setEnvIntValue("CATALOG_FIBER_PORT", &cfg.Fiber.Port)
	// PORT is what the standalone service has always listened on
	setEnvIntValue("PORT", &cfg.Fiber.Port)
	setEnvValue("CATALOG_FIBER_ALLOW_ORIGINS", &cfg.Fiber.AllowOrigins)

	setEnvValue("CATALOG_DB_TYPE", &cfg.Database.Type)
	setEnvValue("CATALOG_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("CATALOG_DB_PORT", &cfg.Database.Port)
	setEnvValue("CATALOG_DB_NAME", &cfg.Database.Name)
	setEnvValue("CATALOG_DB_USER", &cfg.Database.User)
	setEnvValue("CATALOG_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("DATABASE_URL", &cfg.Database.Dsn)
	setEnvIntValue("CATALOG_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("CATALOG_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("CATALOG_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("CATALOG_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("CATALOG_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("CATALOG_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvBoolValue("CATALOG_STOREFRONT_ENABLED", &cfg.Storefront.Enabled)
	setEnvValue("CATALOG_STOREFRONT_API_BASE_URL", &cfg.Storefront.ApiBaseURL)
	setEnvIntValue("CATALOG_STOREFRONT_TIMEOUT", &cfg.Storefront.Timeout)
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return
	}
	if b, err := cast.ToBoolE(v); err == nil {
		*val = b
	}
}

func setEnvIntValue(name string, val *int) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return
	}
	if i, err := cast.ToIntE(v); err == nil {
		*val = i
	}
}
