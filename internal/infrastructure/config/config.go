package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Encoder EncoderConfig
	Photos  PhotoStoreConfig
	Door    DoorConfig
	Match   MatchConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=face_access"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type EncoderConfig struct {
	URL string `env:"ENCODER_URL, default=http://localhost:8000"`
}

type PhotoStoreConfig struct {
	URL    string `env:"PHOTO_STORE_URL"`
	Bucket string `env:"PHOTO_STORE_BUCKET, default=biometrics"`
	Key    string `env:"PHOTO_STORE_KEY"`
}

type DoorConfig struct {
	URL     string `env:"DOOR_URL"`
	Token   string `env:"DOOR_TOKEN"`
	Workers int    `env:"UNLOCK_WORKERS, default=4"`
}

type MatchConfig struct {
	Tolerance float64 `env:"MATCH_TOLERANCE, default=0.5"`
	Strategy  string  `env:"MATCH_STRATEGY,  default=first"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
