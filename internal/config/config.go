package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/storefront-payments/internal/cache"
	"github.com/Behyna/storefront-payments/internal/database"
	"github.com/Behyna/storefront-payments/pkg/mq"
	"github.com/Behyna/storefront-payments/pkg/paymentgateway"
	"github.com/spf13/viper"
)

type Config struct {
	API            API                   `mapstructure:"api"`
	Auth           Auth                  `mapstructure:"auth"`
	Database       database.Config       `mapstructure:"database"`
	Redis          cache.Config          `mapstructure:"redis"`
	RabbitMQ       mq.Config             `mapstructure:"rabbitmq"`
	PaymentGateway paymentgateway.Config `mapstructure:"payment_gateway"`
	Payment        Payment               `mapstructure:"payment"`
	Publisher      Publisher             `mapstructure:"publisher"`
}

type API struct {
	Port      string `mapstructure:"port"`
	PublicURL string `mapstructure:"public_url"`
}

type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Payment holds storefront-side checkout settings sent to the gateway.
type Payment struct {
	Currency          string `mapstructure:"currency"`
	Description       string `mapstructure:"description"`
	SiteName          string `mapstructure:"site_name"`
	SiteLogo          string `mapstructure:"site_logo"`
	CheckoutTheme     string `mapstructure:"checkout_theme"`
	IdentifierPrefix  string `mapstructure:"identifier_prefix"`
	StrictIPNParsing  bool   `mapstructure:"strict_ipn_parsing"`
	DefaultMobile     string `mapstructure:"default_mobile"`
	MaxHistoryPerPage int    `mapstructure:"max_history_per_page"`
}

type Publisher struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Queue     string        `mapstructure:"queue"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("api.port", ":8080")
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("redis.ttl", 5*time.Second)
	viper.SetDefault("payment_gateway.timeout", 15*time.Second)
	viper.SetDefault("payment_gateway.checkout_path", "/api/checkout-v2")
	viper.SetDefault("payment.currency", "BDT")
	viper.SetDefault("payment.description", "Account credit top-up")
	viper.SetDefault("payment.checkout_theme", "light")
	viper.SetDefault("payment.identifier_prefix", "TP")
	viper.SetDefault("payment.max_history_per_page", 50)
	viper.SetDefault("publisher.interval", 30*time.Second)
	viper.SetDefault("publisher.batch_size", 100)
	viper.SetDefault("publisher.queue", "payment.events")
}
