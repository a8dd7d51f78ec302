package config

import (
	"net"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultAddress  = "localhost"
	DefaultPort     = 4568
	DefaultJSONFile = "db.json"
	DefaultBoltFile = "db.bolt"
	DefaultDSN      = "host=localhost user=dungeon password=dungeon dbname=dungeonmania sslmode=disable"
)

// Config holds everything the server reads from the environment. It is
// built once in main and passed down by value.
type Config struct {
	Address     string
	Port        int
	Headless    bool
	Secure      bool
	TLSCertFile string
	TLSKeyFile  string
	DBType      string
	DatabaseURL string
	DBFile      string
	AutoTick    bool
	LogLevel    string
}

// Load reads the process environment
func Load() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any environment lookup function
func FromLookup(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		val, _ := lookup(key)
		return strings.TrimSpace(val)
	}
	flag := func(key string) bool {
		parsed, err := strconv.ParseBool(get(key))
		return err == nil && parsed
	}

	cfg := Config{
		Address:     get("ADDRESS"),
		Port:        DefaultPort,
		Headless:    flag("HEADLESS"),
		Secure:      flag("SECURE"),
		TLSCertFile: get("TLS_CERT_FILE"),
		TLSKeyFile:  get("TLS_KEY_FILE"),
		DBType:      strings.ToLower(get("DB_TYPE")),
		DatabaseURL: get("DATABASE_URL"),
		DBFile:      get("DB_FILE"),
		AutoTick:    flag("AUTO_TICK"),
		LogLevel:    strings.ToLower(get("LOG_LEVEL")),
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if port, err := strconv.Atoi(get("PORT")); err == nil && port > 0 && port < 65536 {
		cfg.Port = port
	}
	switch cfg.DBType {
	case "postgres":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultDSN
		}
	case "bolt":
		if cfg.DBFile == "" {
			cfg.DBFile = DefaultBoltFile
		}
	default:
		cfg.DBType = "json"
		if cfg.DBFile == "" {
			cfg.DBFile = DefaultJSONFile
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// ListenAddr joins address and port for net/http
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// Scheme is the websocket scheme clients should dial
func (c Config) Scheme() string {
	if c.Secure {
		return "wss"
	}
	return "ws"
}
