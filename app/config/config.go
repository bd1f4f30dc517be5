package config

import (
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config holds everything the server needs at startup. It is built once in
// main and passed down; nothing reads the environment after Load returns.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	SessionTTL  time.Duration
	BcryptCost  int
	Port        string
	Production  bool
}

// Load reads .env (if present) and the process environment.
// JWT_SECRET is mandatory: the server refuses to start without it.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set. Refusing to start.")
	}

	return &Config{
		DatabaseURL: envOr("DATABASE_URL", "host=localhost port=5432 user=postgres dbname=school_portal sslmode=disable"),
		JWTSecret:   secret,
		SessionTTL:  envDuration("SESSION_TTL", 7*24*time.Hour),
		BcryptCost:  envInt("BCRYPT_COST", 12),
		Port:        envOr("PORT", "8080"),
		Production:  os.Getenv("APP_ENV") == "production",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

// InitDB opens the Postgres connection and verifies it with a ping.
func InitDB(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	log.Println("Database connected successfully")
	return db
}
