// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, environment
// variables, and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DataDir is the directory holding staff.json, inventory.json,
	// the transaction ledger, and the text logs.
	DataDir string

	// SessionSecret signs the session cookie. Must be non-empty and
	// stable across restarts or every login is invalidated.
	SessionSecret string

	// SessionTTL is how long an issued session cookie stays valid.
	SessionTTL time.Duration

	// LogLevel sets the zap log level ("Debug", "Info", ...).
	LogLevel string

	// Config is the path to the JSON config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:5050", "run on ip:port server")
	flag.StringVar(&options.DataDir, "d", ".", "data directory")
	flag.StringVar(&options.SessionSecret, "s", "", "session signing secret")
	flag.DurationVar(&options.SessionTTL, "ttl", 12*time.Hour, "session lifetime")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, .env file, and environment
// variables to set configuration values. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env is fine; values already in the environment win.
	_ = godotenv.Load()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		options.SessionSecret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
