// Package config предоставляет структуры и функцию для парсинга и загрузки конфига шлюза.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	CORSPolicy              `yaml:"cors"`
	Analytics               `yaml:"analytics"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8082"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
// TTL по умолчанию — 7 суток, столько живёт сессия фронтенда.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"168h"`
}

// CORSPolicy статическая политика CORS: точный allow-list плюс
// подстроки для dev-хостов. Значения неизменяемы после старта процесса.
type CORSPolicy struct {
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	DevHostPatterns []string      `yaml:"dev_host_patterns"`
	MaxAge          time.Duration `yaml:"max_age" env-default:"600s"`
}

// Analytics настройки прокси к внешнему аналитическому GraphQL API.
type Analytics struct {
	Endpoint  string        `yaml:"endpoint"`
	AccountID string        `yaml:"account_id" env:"ANALYTICS_ACCOUNT_ID"`
	ZoneID    string        `yaml:"zone_id" env:"ANALYTICS_ZONE_ID"`
	APIToken  string        `yaml:"api_token" env:"ANALYTICS_API_TOKEN"`
	Timeout   time.Duration `yaml:"timeout" env-default:"5s"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env-default:"60s"`
}

// RabbitMQ настройки подключения для публикации аудит-событий.
// Пустая строка подключения отключает публикацию.
type RabbitMQ struct {
	ConnectionString string        `yaml:"connection_string"`
	Retries          int           `yaml:"retries" env-default:"5"`
	RetryDelay       time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH, завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
