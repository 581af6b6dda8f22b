package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	ErrInvalidLease = errors.New("lease min must not exceed lease max")
)

type Storage struct {
	Path  string
	Lease struct {
		Min uint32
		Max uint32
	}
}

const (
	Cfg_storage_path     = "storage.path"
	Cfg_storage_leaseMin = "storage.lease.min"
	Cfg_storage_leaseMax = "storage.lease.max"
)

var (
	storageDefaults = map[string]interface{}{
		Cfg_storage_path:     "$HOME/.didreg/data",
		Cfg_storage_leaseMin: 5000,
		Cfg_storage_leaseMax: 5000,
	}
)

func init() {
	for k, v := range storageDefaults {
		viper.SetDefault(k, v)
	}
}

func buildStorageConfig() (*Storage, error) {
	c := &Storage{}

	c.Path = expandPath(viper.GetString(Cfg_storage_path))
	c.Lease.Min = viper.GetUint32(Cfg_storage_leaseMin)
	c.Lease.Max = viper.GetUint32(Cfg_storage_leaseMax)

	if c.Lease.Min > c.Lease.Max {
		return nil, ErrInvalidLease
	}

	return c, nil
}
