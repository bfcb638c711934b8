// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Default public path prefixes when none are configured. Requests whose
// path equals one of these, or continues it past a "/", skip auth.
var defaultPublicPaths = []string{
	"/health",
	"/static",
	"/favicon.ico",
	"/api/deployment",
}

// Options holds the configuration values for the application. It is built
// once by Parse and treated as immutable afterwards.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN holds the database connection string for the field store.
	// Empty means the field endpoints report unavailable.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the config file.
	Config string `json:"-"`

	// Realm is the Basic auth realm reported in challenges.
	Realm string `json:"realm"`

	// AuthUsers holds the registered accounts as "user:pass,user:pass".
	// Supplied via the AUTH_USERS environment variable, never source code.
	AuthUsers string `json:"-"`

	// PublicPaths lists the path prefixes exempt from authentication.
	PublicPaths []string `json:"public_paths"`
}

// Parse parses command-line flags, the config file, and environment
// variables, in increasing order of precedence, and returns the resulting
// Options.
func Parse(args []string) (*Options, error) {
	options := &Options{}

	flags := newFlagSet(options)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnv(options)

	if len(options.PublicPaths) == 0 {
		options.PublicPaths = defaultPublicPaths
	}

	return options, nil
}

// newFlagSet registers the command-line flags against options.
func newFlagSet(options *Options) *flag.FlagSet {
	flags := flag.NewFlagSet("gatekeeper", flag.ContinueOnError)
	flags.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flags.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flags.StringVar(&options.Realm, "realm", "AVA OLO", "basic auth realm")
	flags.StringVar(&options.Config, "config", "config.json", "path to config file")
	flags.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	return flags
}

func applyEnv(options *Options) {
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if realm := os.Getenv("AUTH_REALM"); realm != "" {
		options.Realm = realm
	}
	if users := os.Getenv("AUTH_USERS"); users != "" {
		options.AuthUsers = users
	}
	if paths := os.Getenv("PUBLIC_PATHS"); paths != "" {
		options.PublicPaths = splitList(paths)
	}
}

// Credentials parses AuthUsers into a username → password map. Each entry
// is split on the first colon, so passwords may contain colons.
func (o *Options) Credentials() (map[string]string, error) {
	users := make(map[string]string)
	for _, entry := range splitList(o.AuthUsers) {
		username, password, found := strings.Cut(entry, ":")
		if !found || username == "" {
			return nil, fmt.Errorf("malformed credential entry %q: want user:pass", entry)
		}
		users[username] = password
	}
	return users, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
