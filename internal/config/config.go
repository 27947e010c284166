package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SocketPort  string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"3000"`
	SocketPath  string        `yaml:"socket-path" env:"SOCKET_PATH" env-default:"/"`
	ResetDelay  time.Duration `yaml:"reset-delay" env:"RESET_DELAY" env-default:"2s"`
	EnforceTurn bool          `yaml:"enforce-turn" env:"ENFORCE_TURN" env-default:"false"`
	SendBuffer  int           `yaml:"send-buffer" env:"SEND_BUFFER" env-default:"32"`
	Redis       Redis         `yaml:"redis"`
}

type Redis struct {
	Enabled   bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host      string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port      string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	RoundTTL  time.Duration `yaml:"round-ttl" env:"REDIS_ROUND_TTL" env-default:"24h"`
	MaxRounds int64         `yaml:"max-rounds" env:"REDIS_MAX_ROUNDS" env-default:"100"`
}

// MustLoad - load configuration from the yml file at path, or from the environment alone when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
