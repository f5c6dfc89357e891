package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type TariffConfig struct {
	// DefaultTaxRate seeds the rate card when none exists. It is a decimal
	// fraction (0.16 = 16%), not a percentage integer.
	DefaultTaxRate   float64
	DefaultLaborRate float64
	DefaultPaintRate float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Tariff      TariffConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Tariff: TariffConfig{
			DefaultTaxRate:   v.GetFloat64("TARIFF_DEFAULT_TAX_RATE"),
			DefaultLaborRate: v.GetFloat64("TARIFF_DEFAULT_LABOR_RATE"),
			DefaultPaintRate: v.GetFloat64("TARIFF_DEFAULT_PAINT_RATE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Tariff.DefaultTaxRate == 0 {
		cfg.Tariff.DefaultTaxRate = 0.16
	}
	if cfg.Tariff.DefaultLaborRate == 0 {
		cfg.Tariff.DefaultLaborRate = 45
	}
	if cfg.Tariff.DefaultPaintRate == 0 {
		cfg.Tariff.DefaultPaintRate = 38
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Tariff.DefaultTaxRate < 0 || cfg.Tariff.DefaultTaxRate >= 1 {
		return fmt.Errorf("TARIFF_DEFAULT_TAX_RATE must be a fraction in [0,1)")
	}
	return nil
}
