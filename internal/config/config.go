// Package config loads the web front-end settings from defaults, an optional
// JSON file, the environment (and a .env file) and command-line flags, in
// that order of increasing priority, and validates the result.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/thoas/go-funk"
)

// Config holds every setting of the nexusweb server.
type Config struct {
	RunAddr                      string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	APIBaseURL                   string        `env:"API_BASE_URL" validate:"url"`
	LogLevel                     string        `env:"LOG_LEVEL" validate:"loglevel"`
	StorageFilePath              string        `env:"FILE_STORAGE_PATH" validate:"filepath"`
	DatabaseDSN                  string        `env:"DATABASE_DSN"`
	DBConnectionTimeout          time.Duration `env:"DB_CONNECTION_TIMEOUT"`
	MigrationsDir                string        `env:"MIGRATIONS_DIR"`
	RedisAddr                    string        `env:"REDIS_ADDR"`
	RedisPassword                string        `env:"REDIS_PASSWORD"`
	ClientCookieName             string        `env:"CLIENT_COOKIE_NAME" validate:"required"`
	ClientCookieSigningSecretKey string        `env:"CLIENT_COOKIE_SIGNING_SECRET_KEY" validate:"required,base64url"`
	DemoFallback                 bool          `env:"DEMO_FALLBACK"`
	DemoFallbackDelay            time.Duration `env:"DEMO_FALLBACK_DELAY"`
	ConfigFile                   string        `env:"CONFIG"`
}

// fileConfig mirrors Config for the JSON file. Durations are strings like "2s".
type fileConfig struct {
	RunAddr                      string `json:"server_address"`
	APIBaseURL                   string `json:"api_base_url"`
	LogLevel                     string `json:"log_level"`
	StorageFilePath              string `json:"file_storage_path"`
	DatabaseDSN                  string `json:"database_dsn"`
	DBConnectionTimeout          string `json:"db_connection_timeout"`
	MigrationsDir                string `json:"migrations_dir"`
	RedisAddr                    string `json:"redis_addr"`
	RedisPassword                string `json:"redis_password"`
	ClientCookieName             string `json:"client_cookie_name"`
	ClientCookieSigningSecretKey string `json:"client_cookie_signing_secret_key"`
	DemoFallback                 *bool  `json:"demo_fallback"`
	DemoFallbackDelay            string `json:"demo_fallback_delay"`
}

var defaultConfig = Config{
	RunAddr:                      ":8080",
	APIBaseURL:                   "http://localhost:5000",
	LogLevel:                     "info",
	DBConnectionTimeout:          10 * time.Second,
	ClientCookieName:             "nexus_client",
	DemoFallback:                 false,
	DemoFallbackDelay:            2 * time.Second,
}

var allowedLogLevels = []string{"debug", "info", "warn", "warning", "error", "fatal"}

// InitOption configures New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	args                []string
}

// WithDisableFlagsParsing makes New ignore the command line.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithArgs replaces os.Args[1:] as the source of command-line flags.
func WithArgs(args []string) InitOption {
	return func(options *initOptions) {
		options.args = args
	}
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return true
	}
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	return funk.ContainsString(allowedLogLevels, fieldLevel.Field().String())
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

// override copies every non-zero field of src into dst.
func override(dst *Config, src *Config) {
	if src.RunAddr != "" {
		dst.RunAddr = src.RunAddr
	}
	if src.APIBaseURL != "" {
		dst.APIBaseURL = src.APIBaseURL
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.StorageFilePath != "" {
		dst.StorageFilePath = src.StorageFilePath
	}
	if src.DatabaseDSN != "" {
		dst.DatabaseDSN = src.DatabaseDSN
	}
	if src.DBConnectionTimeout != 0 {
		dst.DBConnectionTimeout = src.DBConnectionTimeout
	}
	if src.MigrationsDir != "" {
		dst.MigrationsDir = src.MigrationsDir
	}
	if src.RedisAddr != "" {
		dst.RedisAddr = src.RedisAddr
	}
	if src.RedisPassword != "" {
		dst.RedisPassword = src.RedisPassword
	}
	if src.ClientCookieName != "" {
		dst.ClientCookieName = src.ClientCookieName
	}
	if src.ClientCookieSigningSecretKey != "" {
		dst.ClientCookieSigningSecretKey = src.ClientCookieSigningSecretKey
	}
	if src.DemoFallbackDelay != 0 {
		dst.DemoFallbackDelay = src.DemoFallbackDelay
	}
	if src.ConfigFile != "" {
		dst.ConfigFile = src.ConfigFile
	}
}

func (c *Config) applyJSONFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("in internal/config/config.go/applyJSONFile(): error while `os.ReadFile()` calling: %w", err)
	}

	var fromFile fileConfig
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("in internal/config/config.go/applyJSONFile(): error while `json.Unmarshal()` calling: %w", err)
	}

	values := Config{
		RunAddr:                      fromFile.RunAddr,
		APIBaseURL:                   fromFile.APIBaseURL,
		LogLevel:                     fromFile.LogLevel,
		StorageFilePath:              fromFile.StorageFilePath,
		DatabaseDSN:                  fromFile.DatabaseDSN,
		MigrationsDir:                fromFile.MigrationsDir,
		RedisAddr:                    fromFile.RedisAddr,
		RedisPassword:                fromFile.RedisPassword,
		ClientCookieName:             fromFile.ClientCookieName,
		ClientCookieSigningSecretKey: fromFile.ClientCookieSigningSecretKey,
	}
	if values.DBConnectionTimeout, err = parseDuration(fromFile.DBConnectionTimeout); err != nil {
		return err
	}
	if values.DemoFallbackDelay, err = parseDuration(fromFile.DemoFallbackDelay); err != nil {
		return err
	}

	override(c, &values)
	if fromFile.DemoFallback != nil {
		c.DemoFallback = *fromFile.DemoFallback
	}

	return nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("in internal/config/config.go/parseDuration(): error while `time.ParseDuration()` calling: %w", err)
	}

	return d, nil
}

type flagValues struct {
	values       Config
	demoFallback bool
	set          map[string]bool
}

func parseFlags(args []string) (*flagValues, error) {
	result := &flagValues{set: map[string]bool{}}

	flags := flag.NewFlagSet("nexusweb", flag.ContinueOnError)
	flags.StringVar(&result.values.RunAddr, "a", "", "address and port to run server")
	flags.StringVar(&result.values.APIBaseURL, "b", "", "base URL of the roadmap backend API")
	flags.StringVar(&result.values.LogLevel, "l", "", "logger level")
	flags.StringVar(&result.values.StorageFilePath, "f", "", "JSON file with the client storage")
	flags.StringVar(&result.values.DatabaseDSN, "d", "", "PostgreSQL connection string for the client storage")
	flags.StringVar(&result.values.RedisAddr, "r", "", "Redis address for the client storage")
	flags.StringVar(&result.values.ConfigFile, "c", "", "JSON configuration file")
	flags.BoolVar(&result.demoFallback, "demo", false, "substitute demo roadmaps when the backend fails")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	flags.Visit(func(f *flag.Flag) {
		result.set[f.Name] = true
	})

	return result, nil
}

// New builds the configuration. Priority: flags > environment > JSON file > defaults.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
		args:                os.Args[1:],
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	var valuesFromEnv Config
	if err := env.Parse(&valuesFromEnv); err != nil {
		return nil, err
	}

	fromFlags := &flagValues{set: map[string]bool{}}
	if !options.disableFlagsParsing {
		fromFlags, err = parseFlags(options.args)
		if err != nil {
			return nil, err
		}
	}

	configFile := valuesFromEnv.ConfigFile
	if fromFlags.values.ConfigFile != "" {
		configFile = fromFlags.values.ConfigFile
	}
	if configFile != "" {
		if err := values.applyJSONFile(configFile); err != nil {
			return nil, err
		}
		values.ConfigFile = configFile
	}

	override(values, &valuesFromEnv)
	if _, ok := os.LookupEnv("DEMO_FALLBACK"); ok {
		values.DemoFallback = valuesFromEnv.DemoFallback
	}

	override(values, &fromFlags.values)
	if fromFlags.set["demo"] {
		values.DemoFallback = fromFlags.demoFallback
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
