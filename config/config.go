package config

import (
	"time"

	"github.com/ONSdigital/go-ns/log"
	"github.com/kelseyhightower/envconfig"
)

// Config is the default configuration geo2topo reads at startup,
// overridable by environment. DefaultQuantization is the default of
// geo2topo's -q flag; topo2geo does not read Config.
type Config struct {
	DefaultQuantization int           `envconfig:"DEFAULT_QUANTIZATION"`
	BatchTimeout        time.Duration `envconfig:"BATCH_TIMEOUT"`
}

var cfg *Config

// Get configures the application and returns the configuration.
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		DefaultQuantization: 0,
		BatchTimeout:        5 * time.Minute,
	}

	return cfg, envconfig.Process("", cfg)
}

// Log writes all config properties to log.Debug
func (cfg *Config) Log() {
	log.Debug("Configuration", log.Data{
		"DefaultQuantization": cfg.DefaultQuantization,
		"BatchTimeout":        cfg.BatchTimeout,
	})
}
