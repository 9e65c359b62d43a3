package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const minRoomIDLength = 6

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"3002"`
	Room       Room   `yaml:"room"`
	Redis      Redis  `yaml:"redis"`
}

type Room struct {
	IDLength int `yaml:"id-length" env:"ROOM_ID_LENGTH" env-default:"6"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	MatchTTL    time.Duration `yaml:"match-ttl" env:"REDIS_MATCH_TTL" env-default:"24h"`
	RecentLimit int64         `yaml:"recent-limit" env:"REDIS_RECENT_LIMIT" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yaml file at path, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Room.IDLength < minRoomIDLength {
		return nil, fmt.Errorf("room id-length must be at least %d, got %d", minRoomIDLength, config.Room.IDLength)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
