package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	EscrowDB       `yaml:"escrow_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	KYBService     `yaml:"kyb-service"`
	PaymentService `yaml:"payment-service"`
	Risk           RiskConfig `yaml:"risk"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	NotificationTopic string `yaml:"notification_topic" env-default:"notification-events"`
}

type KYBService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// RiskConfig carries the thresholds the scoring and escrow engines treat
// as configuration rather than invariants.
type RiskConfig struct {
	DefaultAdvancePercent float64 `yaml:"default_advance_percent" env-default:"30"`
	HighValueThreshold    float64 `yaml:"high_value_threshold" env-default:"10000"`
	VelocityWindowMinutes int     `yaml:"velocity_window_minutes" env-default:"60"`
	VelocityMaxCount      int     `yaml:"velocity_max_count" env-default:"5"`
	NightHourFrom         int     `yaml:"night_hour_from" env-default:"2"`
	NightHourTo           int     `yaml:"night_hour_to" env-default:"5"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
