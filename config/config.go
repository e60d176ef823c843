package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port          string   `env:"PORT" envDefault:"8080"`
	GinMode       string   `env:"GIN_MODE" envDefault:"debug"`
	MongoURI      string   `env:"MONGODB_URI" envDefault:"mongodb://127.0.0.1:27017"`
	MongoDatabase string   `env:"MONGODB_DB" envDefault:"buyonix"`
	JWTSecret     string   `env:"JWT_SECRET,required"`
	AllowOrigins  []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Deep links embedded in notification emails, e.g. https://buyonix.app
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string `env:"SMTP_USER"`
	SMTPPass  string `env:"SMTP_PASS"`
	EmailFrom string `env:"EMAIL_FROM" envDefault:"no-reply@buyonix.app"`

	VAPIDPublicKey  string `env:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"VAPID_PRIVATE_KEY"`
	VAPIDSubscriber string `env:"VAPID_SUBSCRIBER" envDefault:"mailto:no-reply@buyonix.app"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
