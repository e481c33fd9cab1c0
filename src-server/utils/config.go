package utils

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	port       string
	sqlitePath string
	location   *time.Location

	databaseURL string
	jwtSecret   string
	jwtExpire   time.Duration

	openWeatherApiKey string
	geocoderURL       string
	seedFile          string

	metricCollectionInterval time.Duration
	reminderScanInterval     time.Duration
	cloudSyncInterval        time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),
		sqlitePath: func() string {
			path := os.Getenv("SQLITE_PATH")
			if path == "" {
				path = "./sqlite.db"
			}
			slog.Debug("env", "SQLITE_PATH", path)
			return path
		}(),
		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		databaseURL: func() string {
			databaseURL := os.Getenv("DATABASE_URL")
			if databaseURL == "" {
				slog.Warn("DATABASE_URL is not set, cloud sync is disabled")
				return ""
			}
			slog.Debug("env", "DATABASE_URL", databaseURL[0:3]+"...")
			return databaseURL
		}(),
		jwtSecret: func() string {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				slog.Warn("JWT_SECRET is not set")
				secret = "secret"
			}
			return secret
		}(),
		jwtExpire: func() time.Duration {
			jwtExpire := os.Getenv("JWT_EXPIRE")
			if jwtExpire == "" {
				jwtExpire = "168h" // 1 week
			}
			duration, err := time.ParseDuration(jwtExpire)
			if err != nil {
				slog.Error("invalid JWT_EXPIRE", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "JWT_EXPIRE", jwtExpire, "duration", duration)
			return duration
		}(),

		openWeatherApiKey: func() string {
			apiKey := os.Getenv("OPENWEATHER_API_KEY")
			if apiKey == "" {
				slog.Warn("OPENWEATHER_API_KEY is not set, weather lookups are disabled")
				return ""
			}
			slog.Debug("env", "OPENWEATHER_API_KEY", apiKey[0:3]+"...")
			return apiKey
		}(),
		geocoderURL: func() string {
			geocoderURL := os.Getenv("GEOCODER_URL")
			if geocoderURL == "" {
				geocoderURL = "https://nominatim.openstreetmap.org"
			}
			slog.Debug("env", "GEOCODER_URL", geocoderURL)
			return geocoderURL
		}(),
		seedFile: func() string {
			seedFile := os.Getenv("SEED_FILE")
			if seedFile == "" {
				return ""
			}
			if _, err := os.Stat(seedFile); err != nil {
				slog.Error("can't get info of SEED_FILE", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "SEED_FILE", seedFile)
			return seedFile
		}(),

		metricCollectionInterval: parseDurationEnv("METRIC_COLLECTION_INTERVAL", 15*time.Second),
		reminderScanInterval:     parseDurationEnv("REMINDER_SCAN_INTERVAL", 30*time.Second),
		cloudSyncInterval:        parseDurationEnv("CLOUD_SYNC_INTERVAL", 5*time.Minute),
	}
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	duration, err := time.ParseDuration(raw)
	if err != nil {
		slog.Error("invalid duration", "env", key, "error", err)
		os.Exit(1)
	}
	slog.Debug("env", key, duration)
	return duration
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get SQLITE_PATH env
func (c *Config) GetSqlitePath() string {
	return c.sqlitePath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DATABASE_URL env; blank when cloud sync is disabled
func (c *Config) GetDatabaseURL() string {
	return c.databaseURL
}

// Get JWT_SECRET env
func (c *Config) GetJWTSecret() string {
	return c.jwtSecret
}

// Get JWT_EXPIRE env
func (c *Config) GetJWTExpire() time.Duration {
	return c.jwtExpire
}

// Get OPENWEATHER_API_KEY env; blank when weather lookups are disabled
func (c *Config) GetOpenWeatherApiKey() string {
	return c.openWeatherApiKey
}

// Get GEOCODER_URL env
func (c *Config) GetGeocoderURL() string {
	return c.geocoderURL
}

// Get SEED_FILE env; blank when not set
func (c *Config) GetSeedFile() string {
	return c.seedFile
}

func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

func (c *Config) GetReminderScanInterval() time.Duration {
	return c.reminderScanInterval
}

func (c *Config) GetCloudSyncInterval() time.Duration {
	return c.cloudSyncInterval
}
