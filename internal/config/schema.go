package config

// Config represents the full asana-agent configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Asana API configuration
	Asana AsanaConfig `yaml:"asana" mapstructure:"asana"`

	// Registry document configuration
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`

	// Confirmation ledger configuration
	Ledger LedgerConfig `yaml:"ledger" mapstructure:"ledger"`

	// HTTP facade configuration
	Serve ServeConfig `yaml:"serve" mapstructure:"serve"`

	// Project-specific settings (only in project config)
	Project ProjectConfig `yaml:"project" mapstructure:"project"`
}

// AsanaConfig configures the Asana client
type AsanaConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TokenEnv    string `yaml:"token_env" mapstructure:"token_env"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// RegistryConfig configures registry loading
type RegistryConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
}

// LedgerConfig configures the local confirmation ledger
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// ServeConfig configures the HTTP facade
type ServeConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}
