package config

import (
	"strings"
	"time"

	"github.com/jsphweid/musixbooth/db"
	"github.com/jsphweid/musixbooth/logger"
	"github.com/jsphweid/musixbooth/tapper"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Tapper TapperConfig
	Store  StoreConfig
	Server ServerConfig
	Log    LogConfig
}

type TapperConfig struct {
	ResetDelayMs int
	DebounceMs   int
	MaxTaps      int
}

type StoreConfig struct {
	Driver         string
	Path           string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DynamoEndpoint string
	DynamoRegion   string
	DynamoTable    string
	SaveDebounceMs int
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tapper.reset_delay_ms", int(tapper.DefaultResetDelay/time.Millisecond))
	v.SetDefault("tapper.debounce_ms", int(tapper.DefaultDebounce/time.Millisecond))
	v.SetDefault("tapper.max_taps", tapper.DefaultMaxTaps)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", db.DefaultSQLitePath)
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.dynamodb_endpoint", db.DefaultDynamoEndpoint)
	v.SetDefault("store.dynamodb_region", "localhost")
	v.SetDefault("store.dynamodb_table", db.DefaultDynamoTable)
	v.SetDefault("store.save_debounce_ms", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("log.level", "INFO")
}

// Load reads musixbooth.yaml from configFile, or from . and ./config when
// configFile is empty. A missing file is fine; MUSIXBOOTH_* environment
// variables override both.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("musixbooth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("musixbooth")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// LOG_LEVEL without the prefix, as other tools use it
	_ = v.BindEnv("log.level", "MUSIXBOOTH_LOG_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	if n := v.GetInt("tapper.max_taps"); n < 2 {
		logger.Warnf("tapper.max_taps %d is below 2, using %d", n, tapper.DefaultMaxTaps)
	}
	if ms := v.GetInt("tapper.debounce_ms"); ms < 0 {
		logger.Warnf("tapper.debounce_ms %d is negative, using %s", ms, tapper.DefaultDebounce)
	}

	return &Config{
		Tapper: TapperConfig{
			ResetDelayMs: v.GetInt("tapper.reset_delay_ms"),
			DebounceMs:   v.GetInt("tapper.debounce_ms"),
			MaxTaps:      v.GetInt("tapper.max_taps"),
		},
		Store: StoreConfig{
			Driver:         v.GetString("store.driver"),
			Path:           v.GetString("store.path"),
			RedisAddr:      v.GetString("store.redis_addr"),
			RedisPassword:  v.GetString("store.redis_password"),
			RedisDB:        v.GetInt("store.redis_db"),
			DynamoEndpoint: v.GetString("store.dynamodb_endpoint"),
			DynamoRegion:   v.GetString("store.dynamodb_region"),
			DynamoTable:    v.GetString("store.dynamodb_table"),
			SaveDebounceMs: v.GetInt("store.save_debounce_ms"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			AllowedOrigins: splitOrigins(v.GetString("server.allowed_origins")),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}, nil
}

func splitOrigins(s string) []string {
	var res []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	if len(res) == 0 {
		return []string{"*"}
	}
	return res
}

func (c TapperConfig) Estimator() tapper.Config {
	return tapper.Config{
		ResetDelay: time.Duration(c.ResetDelayMs) * time.Millisecond,
		Debounce:   time.Duration(c.DebounceMs) * time.Millisecond,
		MaxTaps:    c.MaxTaps,
	}
}

func (c StoreConfig) Options() db.Options {
	return db.Options{
		Driver:         c.Driver,
		Path:           c.Path,
		RedisAddr:      c.RedisAddr,
		RedisPassword:  c.RedisPassword,
		RedisDB:        c.RedisDB,
		DynamoEndpoint: c.DynamoEndpoint,
		DynamoRegion:   c.DynamoRegion,
		DynamoTable:    c.DynamoTable,
	}
}

func (c StoreConfig) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMs) * time.Millisecond
}
