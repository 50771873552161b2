package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // mysql, postgres, duckdb, sqlite

	// File-based databases (DuckDB, SQLite) use Database as the path.
	Database string `koanf:"database"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., DuckDB settings)
	Params map[string]any `koanf:"params"`
}

// AdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	if t == nil {
		return AdapterConfig{}
	}
	return AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
		Params:   t.Params,
	}
}
