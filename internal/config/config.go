package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Data source selection
	DataSource string // script | sheets | memory

	// Apps Script feed (script source)
	FeedURL string

	// Google Sheets (sheets source)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Memory source fixture
	FeedFixtureFile string

	// Refresh cycle; 0 disables periodic refresh (single fetch at startup)
	RefreshInterval time.Duration

	// Department whose headcount divides earnings in "operation" mode
	OperationsDepartment string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		DataSource: getEnv("DATA_SOURCE", "script"),

		FeedURL: getEnv("FEED_URL", ""),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Sheet1"),

		FeedFixtureFile: getEnv("FEED_FIXTURE_FILE", "./data/feed_sample.json"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 0),

		OperationsDepartment: getEnv("OPERATIONS_DEPARTMENT", "Operação"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case "script":
		if c.FeedURL == "" {
			errs = append(errs, "FEED_URL is required when using the script data source")
		} else if u, err := url.Parse(c.FeedURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid feed URL '%s': %v", c.FeedURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid feed URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets data source")
		}
		if c.GoogleSheetName == "" {
			errs = append(errs, "GOOGLE_SHEET_NAME cannot be empty when using the sheets data source")
		}
	case "memory":
		// Fixture file is optional; a missing file starts an empty source.
	default:
		errs = append(errs, fmt.Sprintf("invalid data source '%s': must be one of [script sheets memory]", c.DataSource))
	}

	if c.RefreshInterval != 0 {
		if c.RefreshInterval < 10*time.Second {
			errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at least 10 seconds", c.RefreshInterval))
		} else if c.RefreshInterval > 24*time.Hour {
			errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
		}
	}

	if strings.TrimSpace(c.OperationsDepartment) == "" {
		errs = append(errs, "operations department cannot be blank")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
