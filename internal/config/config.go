package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds the settings of the service binaries. Every key can be set in the optional YAML
// file and overridden by the environment variable of the same name in upper case, e.g. DBHOST.
type Config struct {
	Port int `koanf:"port"`

	DBDriver          string        `koanf:"dbdriver"`
	DBHost            string        `koanf:"dbhost"`
	DBPort            int           `koanf:"dbport"`
	DBUser            string        `koanf:"dbuser"`
	DBPassword        string        `koanf:"dbpwd"`
	DBName            string        `koanf:"dbname"`
	DBSSLMode         string        `koanf:"dbsslmode"`
	DBMaxOpenConns    int           `koanf:"dbmaxopenconns"`
	DBMaxIdleConns    int           `koanf:"dbmaxidleconns"`
	DBConnMaxLifetime time.Duration `koanf:"dbconnmaxlifetime"`

	// GinLogging turns the per-request log line on or off.
	GinLogging     string `koanf:"gin_logging"`
	LogLevel       string `koanf:"log_level"`
	LogDevelopment bool   `koanf:"log_development"`

	// BirthdayWindow is the number of days after today that count as upcoming birthdays.
	BirthdayWindow int `koanf:"birthday_window"`
}

// Default returns the configuration used for keys that are not set anywhere.
func Default() Config {
	return Config{
		Port:              8080,
		DBDriver:          "mysql",
		DBHost:            "localhost",
		DBName:            "test",
		DBSSLMode:         "disable",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    25,
		DBConnMaxLifetime: 5 * time.Minute,
		GinLogging:        "on",
		LogLevel:          "info",
		BirthdayWindow:    7,
	}
}

// Load reads the YAML file at path, if path is not empty, and then the environment. The environ
// function supplies the environment in KEY=value form; nil means os.Environ.
func Load(path string, environ func() []string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(key), value
		},
		EnvironFunc: environ,
	}), nil); err != nil {
		return cfg, errors.Wrap(err, "load environment variables")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, errors.Wrap(err, "unmarshal config")
	}

	if cfg.DBPort == 0 {
		cfg.DBPort = 3306
		if cfg.DBDriver == "postgres" {
			cfg.DBPort = 5432
		}
	}
	if cfg.BirthdayWindow < 0 {
		return cfg, errors.Errorf("birthday_window must not be negative, got %d", cfg.BirthdayWindow)
	}
	return cfg, nil
}

// RequestLogging reports whether the per-request log line is enabled.
func (c Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}
