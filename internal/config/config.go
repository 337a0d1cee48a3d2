package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Overpass   OverpassConfig
	Nominatim  NominatimConfig
	IPLocation IPLocationConfig
	Fetch      FetchConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	PlacesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// OverpassConfig настройки клиента Overpass API
type OverpassConfig struct {
	BaseURL            string
	RequestTimeout     time.Duration
	MinRequestInterval time.Duration
	QueryTimeoutSec    int
}

type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type IPLocationConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// FetchConfig параметры координатора выборки
type FetchConfig struct {
	CenterEpsilonDeg float64
	DefaultRadiusKm  float64
	DefaultLat       float64
	DefaultLon       float64
	DefaultPlaceName string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env is optional: environment variables alone are enough
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			viper.Reset()
			viper.AutomaticEnv()
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			PlacesCacheTTL: time.Duration(viper.GetInt("PLACES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			BaseURL:            viper.GetString("OVERPASS_BASE_URL"),
			RequestTimeout:     time.Duration(viper.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			MinRequestInterval: time.Duration(viper.GetInt("OVERPASS_MIN_REQUEST_INTERVAL")) * time.Millisecond,
			QueryTimeoutSec:    viper.GetInt("OVERPASS_QUERY_TIMEOUT"),
		},
		Nominatim: NominatimConfig{
			BaseURL:        viper.GetString("NOMINATIM_BASE_URL"),
			UserAgent:      viper.GetString("NOMINATIM_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("NOMINATIM_REQUEST_TIMEOUT")) * time.Second,
		},
		IPLocation: IPLocationConfig{
			BaseURL:        viper.GetString("IPLOCATION_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("IPLOCATION_REQUEST_TIMEOUT")) * time.Second,
		},
		Fetch: FetchConfig{
			CenterEpsilonDeg: viper.GetFloat64("FETCH_CENTER_EPSILON_DEG"),
			DefaultRadiusKm:  viper.GetFloat64("FETCH_DEFAULT_RADIUS_KM"),
			DefaultLat:       viper.GetFloat64("FETCH_DEFAULT_LAT"),
			DefaultLon:       viper.GetFloat64("FETCH_DEFAULT_LON"),
			DefaultPlaceName: viper.GetString("FETCH_DEFAULT_PLACE_NAME"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.PlacesCacheTTL == 0 {
		cfg.Cache.PlacesCacheTTL = 5 * time.Minute
	}
	if cfg.Overpass.BaseURL == "" {
		cfg.Overpass.BaseURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 30 * time.Second
	}
	if cfg.Overpass.MinRequestInterval == 0 {
		cfg.Overpass.MinRequestInterval = 2000 * time.Millisecond
	}
	if cfg.Overpass.QueryTimeoutSec == 0 {
		cfg.Overpass.QueryTimeoutSec = 25
	}
	if cfg.Nominatim.BaseURL == "" {
		cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Nominatim.UserAgent == "" {
		cfg.Nominatim.UserAgent = "accessmap-service/1.0"
	}
	if cfg.Nominatim.RequestTimeout == 0 {
		cfg.Nominatim.RequestTimeout = 10 * time.Second
	}
	if cfg.IPLocation.BaseURL == "" {
		cfg.IPLocation.BaseURL = "https://ipapi.co/json/"
	}
	if cfg.IPLocation.RequestTimeout == 0 {
		cfg.IPLocation.RequestTimeout = 10 * time.Second
	}
	if cfg.Fetch.CenterEpsilonDeg == 0 {
		cfg.Fetch.CenterEpsilonDeg = 0.001
	}
	if cfg.Fetch.DefaultRadiusKm == 0 {
		cfg.Fetch.DefaultRadiusKm = 5
	}
	if cfg.Fetch.DefaultLat == 0 && cfg.Fetch.DefaultLon == 0 {
		cfg.Fetch.DefaultLat = 22.9734
		cfg.Fetch.DefaultLon = 78.6569
	}
	if cfg.Fetch.DefaultPlaceName == "" {
		cfg.Fetch.DefaultPlaceName = "India"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// CacheEnabled сообщает, настроен ли Redis для кеширования результатов
func (c *Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}
