package config

import (
	"fmt"
	"os"
	"strconv"
)

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers       []string
	DecisionTopic string
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	LogLevel    string
	LogFormat   string
	ModelV2Flag string
	Redis       RedisConfig
	Kafka       KafkaConfig
	ServiceName string
}

func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 9094),
		HTTPPort:    getEnvInt("HTTP_PORT", 8094),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		ModelV2Flag: getEnv("MODEL_V2_FLAG", "model_v2_enabled"),
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			DecisionTopic: getEnv("DECISION_TOPIC", "underwriting-decisions"),
		},
		ServiceName: "underwriting-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
