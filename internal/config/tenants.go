package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

// Tenant holds the endpoint identity of one configured company. Each
// top-level key of the tenants file is a tenant label mapping to one of
// these.
type Tenant struct {
	URL       string `yaml:"url"`
	Database  string `yaml:"database"`
	APIKey    string `yaml:"api_key"`
	CompanyID int    `yaml:"company_id"`
}

// LoadTenants reads the sectioned tenant configuration file. A missing
// file, unparseable document, or empty tenant set is a configuration error.
func LoadTenants(path string) (map[string]Tenant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("configuration file not found: %s", path))
	}

	var tenants map[string]Tenant
	if err := yaml.Unmarshal(data, &tenants); err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("invalid tenant configuration %s: %v", path, err))
	}

	if len(tenants) == 0 {
		return nil, errors.NewConfigurationError(fmt.Sprintf("no company configurations found in %s", path))
	}

	for name, t := range tenants {
		if t.CompanyID == 0 {
			t.CompanyID = 1
			tenants[name] = t
		}
	}

	return tenants, nil
}
