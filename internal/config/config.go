package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// Separate signing secrets for the admin and user token audiences.
	JWTAdminSecret string `envconfig:"JWT_ADMIN_SECRET" required:"true"`
	JWTUserSecret  string `envconfig:"JWT_USER_SECRET" required:"true"`

	// Object storage for course images (any S3-compatible endpoint).
	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	PaymentCurrency string `envconfig:"PAYMENT_CURRENCY" default:"usd"`

	// Upper bound applied to outbound storage and payment calls.
	ExternalCallTimeoutSec int `envconfig:"EXTERNAL_CALL_TIMEOUT_SEC" default:"15"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
