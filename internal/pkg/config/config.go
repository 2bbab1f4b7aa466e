package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	BaseUrl string `yaml:"base_url"`
	Port    string `yaml:"port"`

	JWTKey string `yaml:"jwt_key"`

	// QRSecretKey is the trust root for every station token. It must come
	// from configuration, never from source.
	QRSecretKey     string `yaml:"qr_secret_key"`
	QRExpiryMinutes int    `yaml:"qr_expiry_minutes"`
	QRImageSize     int    `yaml:"qr_image_size"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing required jwt_key configuration")
	}
	if c.QRSecretKey == "" {
		return nil, errors.New("missing required qr_secret_key configuration")
	}

	if c.QRExpiryMinutes <= 0 {
		c.QRExpiryMinutes = 5
	}
	if c.QRImageSize <= 0 {
		c.QRImageSize = 1024
	}

	return &c, nil
}
