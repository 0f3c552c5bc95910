package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// StorePostgres selects the PostgreSQL summary store.
	StorePostgres = "postgres"
	// StoreSQLite selects the embedded SQLite summary store.
	StoreSQLite = "sqlite"
)

type Config struct {
	Environment         string
	Port                string
	Store               string
	SQLitePath          string
	DBHost              string
	DBPort              string
	DBUsername          string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	UploadDir           string
	MaxUploadMB         int
	EncryptionKeyBase64 string
	APIToken            string
	ProfanityListPath   string
	Language            string
	IMAPServer          string
	IMAPUsername        string
	IMAPPassword        string
	IMAPMailbox         string
	IMAPSubject         string
}

func NewConfig() (*Config, error) {
	env := os.Getenv("CHATLENS_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	maxUploadMB, err := strconv.Atoi(getEnvOrDefault("CHATLENS_MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("CHATLENS_MAX_UPLOAD_MB is not a number: %w", err)
	}

	config := &Config{
		Environment:         env,
		Port:                getEnvOrDefault("PORT", "8080"),
		Store:               getEnvOrDefault("CHATLENS_STORE", StoreSQLite),
		SQLitePath:          getEnvOrDefault("CHATLENS_SQLITE_PATH", "data/chatlens.db"),
		DBHost:              getEnvOrDefault("CHATLENS_DB_HOST", "localhost"),
		DBPort:              getEnvOrDefault("CHATLENS_DB_PORT", "5432"),
		DBUsername:          getEnvOrDefault("CHATLENS_DB_USER", "chatlens"),
		DBPassword:          os.Getenv("CHATLENS_DB_PASSWORD"),
		DBName:              getEnvOrDefault("CHATLENS_DB_NAME", "chatlens"),
		DBSSLMode:           getEnvOrDefault("CHATLENS_DB_SSLMODE", "disable"),
		UploadDir:           getEnvOrDefault("CHATLENS_UPLOAD_DIR", "uploads"),
		MaxUploadMB:         maxUploadMB,
		EncryptionKeyBase64: os.Getenv("CHATLENS_ENCRYPTION_KEY_BASE64"),
		APIToken:            os.Getenv("CHATLENS_API_TOKEN"),
		ProfanityListPath:   os.Getenv("CHATLENS_PROFANITY_LIST"),
		Language:            getEnvOrDefault("CHATLENS_LANGUAGE", "en"),
		IMAPServer:          os.Getenv("CHATLENS_IMAP_SERVER"),
		IMAPUsername:        os.Getenv("CHATLENS_IMAP_USER"),
		IMAPPassword:        os.Getenv("CHATLENS_IMAP_PASSWORD"),
		IMAPMailbox:         getEnvOrDefault("CHATLENS_IMAP_MAILBOX", "INBOX"),
		IMAPSubject:         getEnvOrDefault("CHATLENS_IMAP_SUBJECT", "WhatsApp Chat"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("PORT is not a valid port number: %q", c.Port)
	}

	switch c.Store {
	case StorePostgres:
		if c.DBPassword == "" {
			return fmt.Errorf("CHATLENS_DB_PASSWORD is required when CHATLENS_STORE is %s", StorePostgres)
		}
		if !validPort(c.DBPort) {
			return fmt.Errorf("CHATLENS_DB_PORT is not a valid port number: %q", c.DBPort)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("CHATLENS_SQLITE_PATH is required when CHATLENS_STORE is %s", StoreSQLite)
		}
	default:
		return fmt.Errorf("CHATLENS_STORE must be %q or %q, got %q", StorePostgres, StoreSQLite, c.Store)
	}

	if c.EncryptionKeyBase64 != "" {
		key, err := base64.StdEncoding.DecodeString(c.EncryptionKeyBase64)
		if err != nil {
			return fmt.Errorf("CHATLENS_ENCRYPTION_KEY_BASE64 is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("CHATLENS_ENCRYPTION_KEY_BASE64 must decode to 32 bytes, got %d", len(key))
		}
	}

	if c.Language != "en" && c.Language != "fr" {
		return fmt.Errorf("CHATLENS_LANGUAGE must be \"en\" or \"fr\", got %q", c.Language)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("CHATLENS_MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}

	return nil
}

// ValidateIMAP checks the settings needed by the mailbox importer.
func (c *Config) ValidateIMAP() error {
	if c.IMAPServer == "" {
		return fmt.Errorf("CHATLENS_IMAP_SERVER is required")
	}
	if c.IMAPUsername == "" || c.IMAPPassword == "" {
		return fmt.Errorf("CHATLENS_IMAP_USER and CHATLENS_IMAP_PASSWORD are required")
	}
	return nil
}

func (c *Config) GetDatabaseURL() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUsername, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func validPort(port string) bool {
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
