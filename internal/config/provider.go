package config

import "github.com/footprint-tools/cmdcore/internal/domain"

// Provider is the domain.ConfigProvider backed by ~/.cmdcorerc.
type Provider struct{}

var _ domain.ConfigProvider = (*Provider)(nil)

func NewProvider() *Provider { return &Provider{} }

func (*Provider) Get(key string) (string, bool)      { return Get(key) }
func (*Provider) GetAll() (map[string]string, error) { return GetAll() }

func (*Provider) Set(key, value string) error {
	return Edit(func(lines []string) ([]string, bool) {
		lines, _ = Set(lines, key, value)
		return lines, true
	})
}

func (*Provider) Unset(key string) error {
	return Edit(func(lines []string) ([]string, bool) {
		return Unset(lines, key)
	})
}
