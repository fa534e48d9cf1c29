package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Backend BackendConfig
	MQTT    MQTTConfig
	Kiosk   KioskConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type BackendConfig struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
}

type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
}

type KioskConfig struct {
	ScanGap       time.Duration // max pause between scanner keystrokes
	MinScanLength int           // Enter flushes only buffers longer than this
	SuccessDelay  time.Duration // success screen dwell before auto-return
	ToastTTL      time.Duration
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8090"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Backend: BackendConfig{
			BaseURL:      getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
			APIKey:       getEnv("BACKEND_API_KEY", ""),
			APIKeyHeader: getEnv("BACKEND_API_KEY_HEADER", "vasco"),
			Timeout:      getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", "localhost:1883"),
			Topic:    getEnv("MQTT_SCAN_TOPIC", "kiosk/scan-events"),
			ClientID: getEnv("MQTT_CLIENT_ID", "kiosk-service"),
		},
		Kiosk: KioskConfig{
			ScanGap:       getEnvDuration("KIOSK_SCAN_GAP", 100*time.Millisecond),
			MinScanLength: getEnvInt("KIOSK_MIN_SCAN_LENGTH", 2),
			SuccessDelay:  getEnvDuration("KIOSK_SUCCESS_DELAY", 4*time.Second),
			ToastTTL:      getEnvDuration("KIOSK_TOAST_TTL", 4*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
