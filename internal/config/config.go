package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tcfw/didreg/internal/utils/logging"
)

const (
	Cfg_verbose   = "verbose"
	Cfg_logFormat = "log.format"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose:   false,
		Cfg_logFormat: "text",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

// GetConfig reads didreg.yaml, if present, merged with DIDREG_ prefixed env
// vars and any bound flags
func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	if viper.ConfigFileUsed() == "" {
		viper.SetConfigName("didreg")
		viper.AddConfigPath("/etc/didreg/")
		viper.AddConfigPath("$HOME/.didreg")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("DIDREG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logging.Entry().Debug("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return build()
}

func build() (*Config, error) {
	var err error

	c := &Config{}

	c.storage, err = buildStorageConfig()
	if err != nil {
		return nil, errors.Wrap(err, "storage config")
	}

	c.keystore, err = buildKeystoreConfig()
	if err != nil {
		return nil, errors.Wrap(err, "keystore config")
	}

	c.api, err = buildAPIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "api config")
	}

	logging.SetFormat(viper.GetString(Cfg_logFormat))

	if viper.GetBool(Cfg_verbose) {
		logging.SetLevel(logrus.DebugLevel)
		logging.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	storage  *Storage
	keystore *Keystore
	api      *API
}

func (c *Config) Storage() *Storage {
	return c.storage
}

func (c *Config) Keystore() *Keystore {
	return c.keystore
}

func (c *Config) API() *API {
	return c.api
}
