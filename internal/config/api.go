package config

import (
	"time"

	"github.com/spf13/viper"
)

type API struct {
	Listen          string
	Endpoint        string
	ShutdownTimeout time.Duration
}

const (
	Cfg_api_listen          = "api.listen"
	Cfg_api_endpoint        = "api.endpoint"
	Cfg_api_shutdownTimeout = "api.shutdownTimeout"
)

var (
	apiDefaults = map[string]interface{}{
		Cfg_api_listen:          "127.0.0.1:8712",
		Cfg_api_endpoint:        "http://127.0.0.1:8712",
		Cfg_api_shutdownTimeout: 10 * time.Second,
	}
)

func init() {
	for k, v := range apiDefaults {
		viper.SetDefault(k, v)
	}
}

func buildAPIConfig() (*API, error) {
	c := &API{}

	c.Listen = viper.GetString(Cfg_api_listen)
	c.Endpoint = viper.GetString(Cfg_api_endpoint)
	c.ShutdownTimeout = viper.GetDuration(Cfg_api_shutdownTimeout)

	return c, nil
}
