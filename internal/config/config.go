package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port        string         `yaml:"port"`
	Env         string         `yaml:"env"`
	LogLevel    string         `yaml:"log_level"`
	StoreDriver string         `yaml:"store_driver"`
	CORSOrigins []string       `yaml:"cors_origins"`
	MySQL       MySQLConfig    `yaml:"mysql"`
	Mongo       MongoConfig    `yaml:"mongo"`
	Redis       RedisConfig    `yaml:"redis"`
	RabbitMQ    RabbitMQConfig `yaml:"rabbitmq"`
}

type MySQLConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

// DSN builds a go-sql-driver DSN. clientFoundRows makes UPDATE report matched
// rows, which the compare-and-swap writes rely on.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Host string        `yaml:"host"`
	Port string        `yaml:"port"`
	TTL  time.Duration `yaml:"ttl"`
}

// Addr returns host:port, or "" when redis is not configured.
func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

func Default() *Config {
	return &Config{
		Port:        "6001",
		Env:         "development",
		LogLevel:    "info",
		StoreDriver: DriverMySQL,
		CORSOrigins: []string{"http://localhost:3000"},
		MySQL: MySQLConfig{
			User:     "root",
			Host:     "localhost",
			Port:     "3306",
			Database: "storefront",
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "e-commerce",
		},
		Redis:    RedisConfig{Port: "6379", TTL: time.Minute},
		RabbitMQ: RabbitMQConfig{Exchange: "storefront.exchange"},
	}
}

// Load reads .env (if any), then the YAML file named by CONFIG_FILE (if any),
// then lets environment variables override individual keys.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Env, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.StoreDriver, "STORE_DRIVER")
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		c.CORSOrigins = splitList(raw)
	}

	setString(&c.MySQL.User, "MYSQL_USER")
	setString(&c.MySQL.Password, "MYSQL_PASSWORD")
	setString(&c.MySQL.Host, "MYSQL_HOST")
	setString(&c.MySQL.Port, "MYSQL_PORT")
	setString(&c.MySQL.Database, "MYSQL_DATABASE")

	setString(&c.Mongo.URI, "MONGO_URI")
	setString(&c.Mongo.Database, "MONGO_DATABASE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: CACHE_TTL: %w", err)
		}
		c.Redis.TTL = ttl
	}

	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.RabbitMQ.Exchange, "RABBITMQ_EXCHANGE")
	return nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMySQL, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Port == "" {
		return fmt.Errorf("config: PORT is empty")
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
