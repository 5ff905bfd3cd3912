package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"hotel-booking-api/utils"
)

// Config is built once in main and passed explicitly to whatever needs it.
// Lifetime = process lifetime; nothing re-reads the environment later.
type Config struct {
	Port        string
	CORSOrigins []string
	MySQLDSN    string
	DBName      string
	SMTP        utils.SMTPConfig
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// Load resolves the full process configuration from the environment.
func Load() (*Config, error) {
	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
		MySQLDSN:    dsn,
		DBName:      dbName,
		SMTP: utils.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     utils.ParseSMTPPort(os.Getenv("SMTP_PORT")),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			FromName: os.Getenv("SMTP_FROM_NAME"),
		},
	}
	return cfg, nil
}

func parseCORSOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
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
		q.Set("loc", "Local")
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
	pass := envOrDefault("DB_PASS", "root")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_bookings")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}
