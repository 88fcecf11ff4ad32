package config

// Settings represents the entire user configuration file.
type Settings struct {
	Version     int              `yaml:"version"`
	Server      *ServerSettings  `yaml:"server,omitempty"`
	Lookup      *LookupSettings  `yaml:"lookup,omitempty"`
	Session     *SessionSettings `yaml:"session,omitempty"`
	Preferences *Preferences     `yaml:"preferences,omitempty"`
}

// ServerSettings configures the HTTP API server.
type ServerSettings struct {
	Host string `yaml:"host"` // Listen host (empty = all interfaces)
	Port int    `yaml:"port"` // Listen port
}

// LookupSettings configures the difficulty-index lookup service client.
type LookupSettings struct {
	BaseURL        string `yaml:"base_url"`        // Lookup service base URL
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Request timeout
}

// SessionSettings configures session snapshot persistence.
type SessionSettings struct {
	MaxAgeHours int    `yaml:"max_age_hours"` // Snapshot age ceiling before a restore is refused
	DebounceMs  int    `yaml:"debounce_ms"`   // Delay between the last state change and the save
	Dir         string `yaml:"dir,omitempty"` // Snapshot directory (empty = OS data dir)
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Locale string `yaml:"locale"` // Step URL locale segment (fr, nl, en)
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Server: &ServerSettings{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Lookup: &LookupSettings{
			BaseURL:        "https://api.loyers.brussels",
			TimeoutSeconds: 10,
		},
		Session: &SessionSettings{
			MaxAgeHours: 24,
			DebounceMs:  1000,
		},
		Preferences: &Preferences{
			Locale: "fr",
		},
	}
}
