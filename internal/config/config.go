// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
//
// Секреты (ключ подписи токенов, секрет вебхука, никнейм администратора,
// цены тарифов) читаются один раз при старте процесса. Смена ключа подписи
// делает недействительными все выпущенные токены — это эксплуатационное
// ограничение, автоматической ротации нет.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DB_URL"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Webhook                 `yaml:"webhook"`
	Admin                   `yaml:"admin"`
	Tiers                   `yaml:"tiers"`
	RateLimits              `yaml:"rate_limits"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с токенами доступа.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
	RefreshTTL   time.Duration `yaml:"refresh_ttl" env-default:"72h"`
}

// Webhook настройки проверки подписи платёжных вебхуков.
type Webhook struct {
	WebhookSecret string `yaml:"webhook_secret" env:"WEBHOOK_SECRET"`
}

// Admin содержит никнейм единственного привилегированного пользователя.
// Роль admin получает только он, все остальные — user.
type Admin struct {
	AdminNickname string `yaml:"admin_nickname" env:"NOVA_ADMIN"`
}

// Tiers содержит две цены, по точному совпадению с которыми платёж
// отображается в уровень подписки.
type Tiers struct {
	TierAPrice int `yaml:"tier_a_price" env:"TIER_A_PRICE" env-default:"450000"`
	TierBPrice int `yaml:"tier_b_price" env:"TIER_B_PRICE" env-default:"800000"`
}

// RateLimits задаёт лимиты запросов в минуту по категориям маршрутов.
type RateLimits struct {
	AuthPerMinute int `yaml:"auth_per_minute" env-default:"7"`
	ReadPerMinute int `yaml:"read_per_minute" env-default:"10"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH,
// и завершает процесс при любой ошибке.
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
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt secret key is not set")
	}
	if cfg.WebhookSecret == "" {
		log.Fatal("webhook secret is not set")
	}
	if cfg.AdminNickname == "" {
		log.Fatal("admin nickname is not set")
	}
	return &cfg
}
