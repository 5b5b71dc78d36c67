package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	SecretKey    string
	Debug        bool
	AllowedHosts []string

	DatabaseURL       string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	LanguageCode string
	TimeZone     string

	StaticURL  string
	StaticRoot string
	MediaURL   string
	MediaRoot  string

	LogLevel     string
	DebugLoggers []string

	OTLPEndpoint string
}

const defaultSecretKey = "insecure-dev-secret-change-me"

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "varejo"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		SecretKey:         getenv("SECRET_KEY", defaultSecretKey),
		Debug:             getenvBool("DEBUG", true),
		AllowedHosts:      parseList(getenv("ALLOWED_HOSTS", "*")),
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL", "sqlite:///db.sqlite3")),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 600),
		LanguageCode:      getenv("LANGUAGE_CODE", "pt-br"),
		TimeZone:          getenv("TIME_ZONE", "UTC"),
		StaticURL:         getenv("STATIC_URL", "static/"),
		StaticRoot:        getenv("STATIC_ROOT", "staticfiles"),
		MediaURL:          getenv("MEDIA_URL", "media/"),
		MediaRoot:         getenv("MEDIA_ROOT", "media"),
		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", "info")),
		DebugLoggers:      parseList(getenv("DEBUG_LOGGERS", "")),
		OTLPEndpoint:      getenv("OTLP_ENDPOINT", ""),
	}

	return cfg
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// HostAllowed reports whether host (without port) matches ALLOWED_HOSTS.
// Entries starting with a dot match the domain and every subdomain.
func (c Config) HostAllowed(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	for _, allowed := range c.AllowedHosts {
		allowed = strings.ToLower(allowed)
		switch {
		case allowed == "*":
			return true
		case strings.HasPrefix(allowed, "."):
			if host == strings.TrimPrefix(allowed, ".") || strings.HasSuffix(host, allowed) {
				return true
			}
		case host == allowed:
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
