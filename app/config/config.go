package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
)

// Config holds the application configuration and the shared DB handle.
type Config struct {
	App struct {
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tuition"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	JWT struct {
		Secret string        `envconfig:"JWT_SECRET" default:"tuition-admin-dev-secret"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	conn *sql.DB
}

var AppConfig *Config

// Load reads .env (when present) and the environment into the global config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	AppConfig = &cfg
	return &cfg, nil
}

// ConnectionString builds the Postgres DSN from the DB settings.
func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

// InitDB opens and pings the database connection pool.
func (c *Config) InitDB() error {
	db, err := sql.Open("postgres", c.ConnectionString())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	c.conn = db
	log.Println("Database connected successfully")
	return nil
}

// GetDB returns the shared database handle.
func GetDB() *sql.DB {
	return AppConfig.conn
}
