package config

import (
	"os"
	"strconv"

	"tshort_dashboard/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Store backend: "redis" or "postgres"
	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	JWTSecret      string
	IdentitySecret string

	// Platform domains
	BaseShortDomain string
	SignupBaseURL   string

	// Business limits
	MinWithdrawal      float64
	MaxReferralLinks   int
	MaxReferralSignups int64
	MaxReferralPercent float64

	// Metric window lengths
	DashboardWindowDays int
	ReferralWindowDays  int

	// Rate limiting
	APIRateLimit   int
	APIRateWindow  int
	AuthRateLimit  int
	AuthRateWindow int
}

// Load reads configuration from the environment. Secrets are required;
// everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	identitySecret := os.Getenv("IDENTITY_SECRET")
	if identitySecret == "" {
		logger.Fatal("IDENTITY_SECRET is not set")
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "redis"
	}
	if backend != "redis" && backend != "postgres" {
		logger.Fatal("STORE_BACKEND must be redis or postgres", "got", backend)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == "postgres" && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if backend == "redis" && redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	shortDomain := os.Getenv("BASE_SHORT_DOMAIN")
	if shortDomain == "" {
		shortDomain = "teraboxlinke.com"
	}

	signupBase := os.Getenv("SIGNUP_BASE_URL")
	if signupBase == "" {
		signupBase = "https://tshortner.in"
	}

	return &Config{
		AppPort:       port,
		StoreBackend:  backend,
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		DatabaseURL:   dbURL,

		JWTSecret:      jwtSecret,
		IdentitySecret: identitySecret,

		BaseShortDomain: shortDomain,
		SignupBaseURL:   signupBase,

		MinWithdrawal:      envFloat("MIN_WITHDRAWAL", 10.0),
		MaxReferralLinks:   envInt("MAX_REFERRAL_LINKS", 5),
		MaxReferralSignups: int64(envInt("MAX_REFERRAL_SIGNUPS", 50)),
		MaxReferralPercent: envFloat("MAX_REFERRAL_PERCENT", 30),

		DashboardWindowDays: envInt("DASHBOARD_WINDOW_DAYS", 90),
		ReferralWindowDays:  envInt("REFERRAL_WINDOW_DAYS", 10),

		APIRateLimit:   envInt("API_RATE_LIMIT", 10),
		APIRateWindow:  envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envInt("AUTH_RATE_WINDOW_SECONDS", 60),
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(name string, def float64) float64 {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
