// Package config provides functionality for managing configuration options
// for the portal using command-line flags, a JSON file, a .env file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by Options.StorageDriver.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Duration is a time.Duration that reads as "1s" style strings from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"1s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// StorageDriver selects where session and cart state live.
	StorageDriver string `json:"storage_driver"`

	// StoragePath is the JSON file (file driver) or database file (sqlite driver).
	StoragePath string `json:"storage_path"`

	// DatabaseDSN holds the PostgreSQL connection string for the postgres driver.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret signs session tokens.
	JWTSecret string `json:"jwt_secret"`

	LogLevel string `json:"log_level"`

	// Latency delays login and signup to mimic a remote backend.
	Latency Duration `json:"latency"`

	// PersistCart keeps the cart across restarts.
	PersistCart bool `json:"persist_cart"`

	// RateLimit and RateBurst bound login/register attempts per client.
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Parse loads configuration from os.Args and the environment, exiting on error.
func Parse() *Options {
	opts, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// Load builds Options from args. Precedence, lowest first: flag defaults,
// flags, config file, .env file and environment.
func Load(args []string) (*Options, error) {
	options := &Options{}
	latency := time.Second

	fs := flag.NewFlagSet("smilecare", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.StorageDriver, "storage", DriverFile, "storage driver: file | memory | sqlite | postgres")
	fs.StringVar(&options.StoragePath, "path", "storage.json", "storage file path")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.JWTSecret, "secret", "", "token signing secret")
	fs.StringVar(&options.LogLevel, "log", "info", "log level")
	fs.DurationVar(&latency, "latency", latency, "simulated login/signup latency")
	fs.BoolVar(&options.PersistCart, "persist-cart", false, "persist the cart between restarts")
	fs.Float64Var(&options.RateLimit, "rate", 5, "login/register requests per second per client")
	fs.IntVar(&options.RateBurst, "burst", 10, "login/register burst per client")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	options.Latency = Duration(latency)

	// .env is optional
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		options.Port = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		options.StorageDriver = v
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		options.StoragePath = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		options.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		options.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		options.LogLevel = v
	}
	if v := os.Getenv("PERSIST_CART"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PERSIST_CART: %w", err)
		}
		options.PersistCart = b
	}

	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func (o *Options) validate() error {
	switch o.StorageDriver {
	case DriverFile, DriverMemory, DriverSQLite:
	case DriverPostgres:
		if o.DatabaseDSN == "" {
			return errors.New("postgres storage requires a database DSN")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", o.StorageDriver)
	}
	if o.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	return nil
}
