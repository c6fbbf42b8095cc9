package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int

	LogLevel string
	LogFile  string

	CatalogDriver string
	CatalogFile   string
	CatalogDSN    string

	UploadDir        string
	PaymentsFile     string
	TransactionsFile string

	SessionDir    string
	SessionSecret []byte

	CSRFEnabled    bool
	StrictCheckout bool

	KafkaBrokers []string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	ES_INDEX    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
	return Load(), nil
}

func Load() *Config {
	return &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "pos_shop"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 3000),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		CatalogDriver: strings.ToLower(EnvDefault("CATALOG_DRIVER", "json")),
		CatalogFile:   EnvDefault("CATALOG_FILE", "products.json"),
		CatalogDSN:    os.Getenv("CATALOG_DSN"),

		UploadDir:        EnvDefault("UPLOAD_DIR", "static/uploads"),
		PaymentsFile:     EnvDefault("PAYMENTS_FILE", "payments.csv"),
		TransactionsFile: EnvDefault("TRANSACTIONS_FILE", "transactions.csv"),

		SessionDir:    EnvDefault("SESSION_DIR", "sessions"),
		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),

		CSRFEnabled:    EnvBoolDefault("CSRF_ENABLED", true),
		StrictCheckout: EnvBoolDefault("STRICT_CHECKOUT", true),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
		ES_INDEX:    EnvDefault("ES_INDEX", "products"),
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
