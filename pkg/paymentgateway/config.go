package paymentgateway

import "time"

type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	CheckoutPath string        `mapstructure:"checkout_path"`
	PublicKey    string        `mapstructure:"public_key"`
	SecretKey    string        `mapstructure:"secret_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
}
