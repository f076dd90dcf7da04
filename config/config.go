package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	OSM struct {
		UserAgent       string        `mapstructure:"userAgent"`
		AcceptLanguage  string        `mapstructure:"acceptLanguage"`
		NominatimURL    string        `mapstructure:"nominatimURL"`
		OverpassURL     string        `mapstructure:"overpassURL"`
		OSRMURL         string        `mapstructure:"osrmURL"`
		SearchTimeout   time.Duration `mapstructure:"searchTimeout"`
		OverpassTimeout time.Duration `mapstructure:"overpassTimeout"`
		RouteTimeout    time.Duration `mapstructure:"routeTimeout"`
	} `mapstructure:"osm"`
	Planner struct {
		DefaultRadiusKm     float64       `mapstructure:"defaultRadiusKm"`
		DefaultLimitPerDay  int           `mapstructure:"defaultLimitPerDay"`
		MaxConcurrentRoutes int           `mapstructure:"maxConcurrentRoutes"`
		CenterCacheTTL      time.Duration `mapstructure:"centerCacheTTL"`
	} `mapstructure:"planner"`
	Wiki struct {
		BaseURL  string        `mapstructure:"baseURL"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"wiki"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
