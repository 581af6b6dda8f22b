package config

import (
	"os"

	"github.com/spf13/viper"
)

type Keystore struct {
	Path    string
	Default string
}

const (
	Cfg_keystore_path    = "keystore.path"
	Cfg_keystore_default = "keystore.default"
)

var (
	keystoreDefaults = map[string]interface{}{
		Cfg_keystore_path:    "$HOME/.didreg/identity.yaml",
		Cfg_keystore_default: "",
	}
)

func init() {
	for k, v := range keystoreDefaults {
		viper.SetDefault(k, v)
	}
}

func buildKeystoreConfig() (*Keystore, error) {
	c := &Keystore{}

	c.Path = expandPath(viper.GetString(Cfg_keystore_path))
	c.Default = viper.GetString(Cfg_keystore_default)

	return c, nil
}

func expandPath(p string) string {
	return os.ExpandEnv(p)
}
