package config

type Config interface {
	EnvConfig
	SessionConfig
	PolicyConfig
}

type EnvConfig interface {
	GetAppName() string
	GetBaseURL() string
	GetLogLevel() string
	GetEnv() string
}

// SessionConfig selects where the session record lives. Scope is one
// of "memory", "file", or "redis"; the remaining getters feed whichever
// backend the scope selects.
type SessionConfig interface {
	GetSessionScope() string
	GetDataFolder() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetSessionNamespace() string
}

// PolicyConfig holds the behaviour switches the dispatcher exposes.
type PolicyConfig interface {
	GetClearSessionOn401() bool
}

type mainConfig struct {
	EnvVars
	SessionVars
	PolicyVars
}

func New() Config {
	return mainConfig{}
}
