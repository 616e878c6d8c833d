package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Log    LogConfig    `mapstructure:"log"`
	MQ     MQConfig     `mapstructure:"mq"`
	WS     WSConfig     `mapstructure:"ws"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig holds the datastore endpoint and its access credential. Both are
// supplied from outside the process.
type DBConfig struct {
	Source      string `mapstructure:"source"`
	Password    string `mapstructure:"password"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type MQConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type WSConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

const placeholderMarker = "REPLACE-WITH"

// Configured reports whether both the endpoint and the credential are set.
// A source still carrying the deploy template placeholder counts as unset.
func (c DBConfig) Configured() bool {
	source := strings.TrimSpace(c.Source)
	if source == "" || strings.TrimSpace(c.Password) == "" {
		return false
	}
	return !strings.Contains(source, placeholderMarker)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("db.source", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.auto_migrate", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", time.Hour)
	v.SetDefault("log.file", "")
	v.SetDefault("mq.url", "")
	v.SetDefault("mq.queue", "cashier.events")
	v.SetDefault("ws.enabled", true)
}

func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
