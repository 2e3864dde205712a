package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	GatewayPort string `env:"GATEWAY_PORT, default=3000"`
	AuthPort    string `env:"AUTH_PORT,    default=3001"`
	Env         string `env:"ENV,          default=development"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Broker   BrokerConfig
	Registry RegistryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=restaurant_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type BrokerConfig struct {
	Queue          string        `env:"BROKER_AUTH_QUEUE,     default=auth_queue"`
	RequestTimeout time.Duration `env:"BROKER_REQUEST_TIMEOUT, default=10s"`
	Workers        int           `env:"BROKER_WORKERS,         default=4"`
}

// RegistryConfig holds the backend URLs advertised by the gateway's
// /services endpoint.
type RegistryConfig struct {
	AuthServiceURL       string `env:"AUTH_SERVICE_URL,       default=http://auth-service:3001"`
	RestaurantServiceURL string `env:"RESTAURANT_SERVICE_URL, default=http://restaurant-api-service:3002"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
