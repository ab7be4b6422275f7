package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Fare     FareConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServerConfig struct {
	Addr string
}

type FareConfig struct {
	// 每一段(edge)的票價
	RatePerEdge decimal.Decimal
	// OTP 有效時間(分鐘)
	OTPTTLMinutes int
	// 車票有效時間(小時)
	TicketTTLHours int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Server:   GetServerConfig(),
		Fare:     GetFareConfig(),
	}

	return AppConfig
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Addr: getEnv("SERVER_ADDR", ":8080"),
	}
}

func GetFareConfig() FareConfig {
	rate, err := decimal.NewFromString(getEnv("FARE_RATE_PER_EDGE", "5.00"))
	if err != nil {
		panic(err)
	}
	otpTTL, err := strconv.Atoi(getEnv("OTP_TTL_MINUTES", "5"))
	if err != nil {
		panic(err)
	}
	ticketTTL, err := strconv.Atoi(getEnv("TICKET_TTL_HOURS", "24"))
	if err != nil {
		panic(err)
	}

	return FareConfig{
		RatePerEdge:    rate,
		OTPTTLMinutes:  otpTTL,
		TicketTTLHours: ticketTTL,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
