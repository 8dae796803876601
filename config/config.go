package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config is everything the service reads from the environment.
type Config struct {
	Port string

	StoreDriver string
	MySQLDSN    string
	DBName      string
	DBLogLevel  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	// MaxPageLimit caps the limit query parameter of room listings; 0 disables the cap.
	MaxPageLimit int

	SeedData      bool
	AdminUsername string
	AdminPassword string
}

// Load reads the configuration from the process environment. All invalid
// values are reported together.
func Load() (Config, error) {
	cfg := Config{
		Port:          envOrDefault("PORT", "8080"),
		StoreDriver:   strings.ToLower(envOrDefault("STORE_DRIVER", DriverMySQL)),
		DBLogLevel:    strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
		RedisAddr:     envOrDefault("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    24 * time.Hour,
		CORSOrigins:   parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:      strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(envOrDefault("LOG_FORMAT", "json")),
		AdminUsername: envOrDefault("SEED_ADMIN_USERNAME", "admin@hotel.local"),
		AdminPassword: envOrDefault("SEED_ADMIN_PASSWORD", "admin123"),
	}

	var invalid []string

	switch cfg.StoreDriver {
	case DriverMySQL:
		dsn, dbName, err := resolveMySQLDSN()
		if err != nil {
			invalid = append(invalid, "MYSQL_URL")
		}
		cfg.MySQLDSN, cfg.DBName = dsn, dbName
	case DriverMemory:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, "REDIS_DB")
		} else {
			cfg.RedisDB = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if v := strings.TrimSpace(os.Getenv("ROOMS_MAX_PAGE_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, "ROOMS_MAX_PAGE_LIMIT")
		} else {
			cfg.MaxPageLimit = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("SEED_DATA")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, "SEED_DATA")
		} else {
			cfg.SeedData = b
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	// Bookings are compared against UTC-midnight dates, so the session runs in UTC.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}
