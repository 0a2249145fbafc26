package config

import (
	"github.com/creasty/defaults"
)

type Configuration struct {
	DBPath       string `default:"resorts.db" debugmap:"visible"`
	Reinitialize bool   `default:"false" debugmap:"visible"`
	LogFormat    string `default:"console" debugmap:"visible"`
	LogLevel     string `default:"info" debugmap:"visible"`
	Access       Access
}

// Access holds the privilege level of each built-in role. Lower is more
// privileged.
type Access struct {
	AdminPrivilege int `default:"-1" debugmap:"visible"`
	UserPrivilege  int `default:"0" debugmap:"visible"`
}

// NewConfigurationWithDefaults returns a Configuration populated from the
// default struct tags.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DebugMap returns the configuration as a map suitable for logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"DBPath":       c.DBPath,
		"Reinitialize": c.Reinitialize,
		"LogFormat":    c.LogFormat,
		"LogLevel":     c.LogLevel,
		"Access": map[string]any{
			"AdminPrivilege": c.Access.AdminPrivilege,
			"UserPrivilege":  c.Access.UserPrivilege,
		},
	}
}
