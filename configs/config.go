package configs

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App        `mapstructure:"app"`
	Postgres   `mapstructure:"postgres"`
	SpellCheck `mapstructure:"spellcheck"`
	Push       `mapstructure:"push"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// SpellCheck struct - platform spell-check service and session manager settings.
// Zero values are replaced with defaults by the application layer.
type SpellCheck struct {
	BaseURL        string `mapstructure:"base_url"`
	Locale         string `mapstructure:"locale"`
	TimeoutMs      int    `mapstructure:"timeout_ms"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	MaxResults     int    `mapstructure:"max_results"`
	QueueSize      int    `mapstructure:"queue_size"`
}

// Push struct - messaging token synchronizer settings.
// Store is one of "rest", "postgres" or "none".
type Push struct {
	Store     string `mapstructure:"store"`
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	StateFile string `mapstructure:"state_file"`
	UserID    string `mapstructure:"user_id"`
	Timeout   int    `mapstructure:"timeout"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	if env != "" {
		viper.SetConfigName("config." + env)
	}
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || env == "" {
			panic(err)
		}
		logrus.Warnf("No config for env %q, falling back to config.yaml", env)
		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			panic(err)
		}
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		logrus.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Fatalln(err)
	}
}
