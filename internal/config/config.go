package config

import (
	"fmt"
	"os"
)

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	DatabasePath string
	TMDBAPIKey   string
	TMDBToken    string
	Port         string
	SiteName     string
}

// Load 加载配置
func Load() *Config {
	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		AppSecret:    appSecret,
		DatabasePath: getEnv("DATABASE_PATH", "movie-collection.db"),
		TMDBAPIKey:   getEnv("TMDB_API_KEY", ""),
		TMDBToken:    getEnv("TMDB_ACCESS_TOKEN", ""),
		Port:         getEnv("PORT", "5005"),
		SiteName:     getEnv("SITE_NAME", "My Top Movies"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
