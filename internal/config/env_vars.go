package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"
	baseURLVar   = "API_BASE_URL"
)

// LoadDotEnv reads a .env file into the process environment. A missing
// file is not an error - deployed environments set real variables.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Commerce Client")
}

// GetBaseURL returns the base URL of the platform backend that every
// request path is resolved against
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv("LOG_LEVEL", "info"))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type SessionVars struct{}

var _ SessionConfig = SessionVars{}

func (SessionVars) GetSessionScope() string {
	return strings.ToLower(GetEnv("SESSION_SCOPE", "memory"))
}

func (SessionVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (SessionVars) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (SessionVars) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (SessionVars) GetSessionNamespace() string {
	return GetEnv("SESSION_NAMESPACE", "storefront")
}

type PolicyVars struct{}

var _ PolicyConfig = PolicyVars{}

// GetClearSessionOn401 selects the authentication-expiry policy. The
// default surfaces the 401 and leaves the session alone, so the host
// page decides whether to send the user back to login.
func (PolicyVars) GetClearSessionOn401() bool {
	return GetEnv("CLEAR_SESSION_ON_401", "false") == "true"
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
