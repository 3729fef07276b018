package app

import (
	"fmt"
	"time"

	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/services"
	"github.com/freddy-ai/freddy-backend/internal/utils"
)

type Config struct {
	Mode         string
	Port         string
	AllowOrigins string
	Auth         services.AuthConfig
}

func LoadConfig(log *logger.Logger) (*Config, error) {
	jwtSecret := utils.GetEnv("JWT_SECRET_KEY", "", log)
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}
	return &Config{
		Mode:         utils.GetEnv("APP_MODE", "development", log),
		Port:         utils.GetEnv("PORT", "8080", log),
		AllowOrigins: utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log),
		Auth: services.AuthConfig{
			JWTSecret:       jwtSecret,
			AccessTokenTTL:  time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15, log)) * time.Minute,
			RefreshTokenTTL: time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 720, log)) * time.Hour,
		},
	}, nil
}
