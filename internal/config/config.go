package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"feed.db"`

	AccessSecret  string        `env:"ACCESS_SECRET,required,notEmpty"`
	RefreshSecret string        `env:"REFRESH_SECRET,required,notEmpty"`
	AccessTTL     time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TTL" envDefault:"168h"`

	MediaUploadURL  string `env:"MEDIA_UPLOAD_URL" envDefault:"https://upload.imagekit.io/api/v1/files/upload"`
	MediaPrivateKey string `env:"MEDIA_PRIVATE_KEY,required,notEmpty"`
	MediaTag        string `env:"MEDIA_TAG" envDefault:"feed"`

	DBMaxOpen     int           `env:"DB_MAX_OPEN" envDefault:"25"`
	DBMaxIdle     int           `env:"DB_MAX_IDLE" envDefault:"25"`
	DBMaxLifetime time.Duration `env:"DB_MAX_LIFETIME" envDefault:"300s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
