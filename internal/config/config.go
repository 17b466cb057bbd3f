package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string `env:"HTTP_PORT" envDefault:"5000"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	DBMaxConns           int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`
	GeminiAPIKey         string `env:"GEMINI_API_KEY"`
	GeminiModel          string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	FaceServiceURL       string `env:"FACE_SERVICE_URL" envDefault:"http://localhost:5001"`
	FaceServiceTimeout   int    `env:"FACE_SERVICE_TIMEOUT_SECONDS" envDefault:"120"`
	FaceRateLimit        int    `env:"FACE_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	LoginRateLimit       int    `env:"LOGIN_RATE_LIMIT_PER_MINUTE" envDefault:"5"`
	RecommendationLimit  int    `env:"RECOMMENDATION_LIMIT" envDefault:"6"`
	QuizCatalogLimit     int    `env:"QUIZ_CATALOG_LIMIT" envDefault:"20"`
	RedisAddr            string `env:"REDIS_ADDR"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
