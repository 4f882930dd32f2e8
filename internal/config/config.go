package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Match struct {
		DailyVoteLimit int `mapstructure:"daily_vote_limit"`
	} `mapstructure:"match"`
	Geo struct {
		CacheSize int `mapstructure:"cache_size"`
	} `mapstructure:"geo"`
}

func LoadConfig(path ...string) (cfg Config, err error) {

	dir := "."
	if len(path) > 0 {
		dir = path[0]
	}

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	viper.AddConfigPath(dir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("match.daily_vote_limit", "LIMIT_PER_DAY")
	viper.BindEnv("geo.cache_size", "GEO_CACHE_SIZE")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("auth.token_lifespan", "20m")
	viper.SetDefault("match.daily_vote_limit", 30)
	viper.SetDefault("geo.cache_size", 1000)

	if err = viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Match.DailyVoteLimit <= 0 {
		return cfg, fmt.Errorf("match.daily_vote_limit must be a positive integer, got %d", cfg.Match.DailyVoteLimit)
	}
	if cfg.Geo.CacheSize <= 0 {
		return cfg, fmt.Errorf("geo.cache_size must be a positive integer, got %d", cfg.Geo.CacheSize)
	}

	return cfg, nil
}
