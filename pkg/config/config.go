package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and optionally a file).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Stripe    StripeConfig
	Billing   BillingConfig
	RateLimit RateLimitConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	PublicURL string // base URL for public links and Stripe redirect URLs
	LogLevel  string
}

// DBConfig PostgreSQL settings.
// If DatabaseURL is non-empty it is used as the full connection string
// (e.g. the DATABASE_URL a Supabase project hands out).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns the DSN to use: DATABASE_URL if set, otherwise DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds a PostgreSQL connection string, URL-encoding the credentials.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig session token settings.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// HTTPConfig server listen settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StripeConfig payment provider keys. SecretKey authenticates API calls,
// WebhookSecret verifies inbound event signatures.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string // subscription price the checkout sells
}

// BillingConfig business knobs for the subscription and referral program.
type BillingConfig struct {
	SubscriptionPriceCents int64 // fixed subscription price used for commission math
	TrialDays              int
}

// RateLimitConfig fixed-window throttle for the checkout endpoints.
type RateLimitConfig struct {
	CheckoutLimit  int
	CheckoutWindow int // seconds
}

// Load reads configuration from environment variables (and optionally a .env file).
// Env vars win. Expected names: APP_ENV, DATABASE_URL, JWT_SECRET, STRIPE_SECRET_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env in the working directory)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "brushly-api"),
			PublicURL: getString(v, "APP_PUBLIC_URL", "http://localhost:3000"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "brushly"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "brushly-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Stripe: StripeConfig{
			SecretKey:     getString(v, "STRIPE_SECRET_KEY", ""),
			WebhookSecret: getString(v, "STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       getString(v, "STRIPE_PRICE_ID", ""),
		},
		Billing: BillingConfig{
			SubscriptionPriceCents: int64(getInt(v, "BILLING_SUBSCRIPTION_PRICE_CENTS", 4900)),
			TrialDays:              getInt(v, "BILLING_TRIAL_DAYS", 14),
		},
		RateLimit: RateLimitConfig{
			CheckoutLimit:  getInt(v, "RATE_LIMIT_CHECKOUT", 5),
			CheckoutWindow: getInt(v, "RATE_LIMIT_CHECKOUT_WINDOW_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration the process cannot run without.
// Development gets defaults so a fresh checkout boots; production does not.
func (c *Config) Validate() error {
	var missing []string
	if c.App.Env == "production" && c.DB.DatabaseURL == "" && c.DB.Password == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWT.Secret == "" {
		if c.App.Env == "production" {
			missing = append(missing, "JWT_SECRET")
		} else {
			c.JWT.Secret = "dev-only-secret"
		}
	}
	if c.App.Env == "production" {
		if c.Stripe.SecretKey == "" {
			missing = append(missing, "STRIPE_SECRET_KEY")
		}
		if c.Stripe.WebhookSecret == "" {
			missing = append(missing, "STRIPE_WEBHOOK_SECRET")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
