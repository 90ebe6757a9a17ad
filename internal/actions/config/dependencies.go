// Package config holds the handlers of the config command group.
package config

import "github.com/footprint-tools/cmdcore/internal/config"

// Deps reach the config file. Edit rewrites it under the config lock.
type Deps struct {
	Edit   func(func([]string) ([]string, bool)) error
	Get    func(string) (string, bool)
	GetAll func() (map[string]string, error)
}

func DefaultDeps() Deps {
	return Deps{Edit: config.Edit, Get: config.Get, GetAll: config.GetAll}
}
