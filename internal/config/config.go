package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string

	// AI / tag inference
	AIEnabled     bool
	AIMaxTags     int
	OpenAIKey     string
	OpenAIModel   string
	OpenAITimeout time.Duration
	AICacheTTL    time.Duration

	// Catalog source
	SheetsDisabled      bool
	SpreadsheetID       string
	ProductsRange       string
	ServiceAccountEmail string
	ServiceAccountKey   string
	CredentialsFile     string
	CacheTTL            time.Duration
	CachePath           string
	MockPath            string

	// Affiliate links
	AffiliateTag string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr: getString("PACKLIST_ADDR", ":8080"),

		AIEnabled:     getBool("AI_ENABLED", false),
		AIMaxTags:     getInt("AI_MAX_TAGS", 6),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getString("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout: time.Duration(getInt("OPENAI_TIMEOUT_MS", 100000)) * time.Millisecond,
		AICacheTTL:    hours("AI_CACHE_TTL_HOURS", 6),

		SheetsDisabled:      getBool("SHEETS_DISABLED", true),
		SpreadsheetID:       os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		ProductsRange:       getString("GOOGLE_SHEETS_PRODUCTS_RANGE", "Products!A:Z"),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		ServiceAccountKey:   os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY"),
		CredentialsFile:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CacheTTL:            hours("CACHE_TTL_HOURS", 12),
		CachePath:           getString("PRODUCTS_CACHE_PATH", "data/products-cache.json"),
		MockPath:            getString("PRODUCTS_MOCK_PATH", "data/products.mock.json"),

		AffiliateTag: getString("AMAZON_AFFILIATE_TAG", "TAG"),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes"
}

// hours reads a TTL expressed in hours, clamped to at least one hour.
func hours(key string, fallback int) time.Duration {
	h := getInt(key, fallback)
	if h < 1 {
		h = 1
	}
	return time.Duration(h) * time.Hour
}
