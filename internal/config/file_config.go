package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileValues is the YAML shape of a client config file. Every field is
// optional; anything unset falls back to the environment-backed value.
type fileValues struct {
	AppName  string `yaml:"appName"`
	BaseURL  string `yaml:"baseURL"`
	LogLevel string `yaml:"logLevel"`
	Env      string `yaml:"env"`

	Session struct {
		Scope         string `yaml:"scope"`
		DataFolder    string `yaml:"dataFolder"`
		RedisAddr     string `yaml:"redisAddr"`
		RedisPassword string `yaml:"redisPassword"`
		Namespace     string `yaml:"namespace"`
	} `yaml:"session"`

	Policy struct {
		ClearSessionOn401 *bool `yaml:"clearSessionOn401"`
	} `yaml:"policy"`
}

type fileConfig struct {
	values fileValues

	env     EnvVars
	session SessionVars
	policy  PolicyVars
}

var _ Config = fileConfig{}

// LoadFile reads a YAML client config. Values missing from the file
// fall back to environment variables and their defaults.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[config.LoadFile] read config file")
	}

	var values fileValues
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrap(err, "[config.LoadFile] parse config file")
	}
	return fileConfig{values: values}, nil
}

func (c fileConfig) GetAppName() string {
	return fallback(c.values.AppName, c.env.GetAppName)
}

func (c fileConfig) GetBaseURL() string {
	return fallback(c.values.BaseURL, c.env.GetBaseURL)
}

func (c fileConfig) GetLogLevel() string {
	return fallback(c.values.LogLevel, c.env.GetLogLevel)
}

func (c fileConfig) GetEnv() string {
	return fallback(c.values.Env, c.env.GetEnv)
}

func (c fileConfig) GetSessionScope() string {
	return fallback(c.values.Session.Scope, c.session.GetSessionScope)
}

func (c fileConfig) GetDataFolder() string {
	return fallback(c.values.Session.DataFolder, c.session.GetDataFolder)
}

func (c fileConfig) GetRedisAddr() string {
	return fallback(c.values.Session.RedisAddr, c.session.GetRedisAddr)
}

func (c fileConfig) GetRedisPassword() string {
	return fallback(c.values.Session.RedisPassword, c.session.GetRedisPassword)
}

func (c fileConfig) GetSessionNamespace() string {
	return fallback(c.values.Session.Namespace, c.session.GetSessionNamespace)
}

func (c fileConfig) GetClearSessionOn401() bool {
	if c.values.Policy.ClearSessionOn401 != nil {
		return *c.values.Policy.ClearSessionOn401
	}
	return c.policy.GetClearSessionOn401()
}

func fallback(value string, def func() string) string {
	if value != "" {
		return value
	}
	return def()
}
