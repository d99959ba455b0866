package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
	} `envconfig:"APP"`

	// Backend describes the remote booking API this client talks to. The base
	// URL is resolved exactly once at startup; nothing else in the codebase is
	// allowed to compute server addresses.
	Backend struct {
		BaseURL             string `envconfig:"BASE_URL"`
		APIPrefix           string `envconfig:"API_PREFIX"`
		RoutePrefix         string `envconfig:"ROUTE_PREFIX"`
		TimeoutSeconds      int    `envconfig:"TIMEOUT_SECONDS"`
		WriteTimeoutSeconds int    `envconfig:"WRITE_TIMEOUT_SECONDS"`
		ProbeTimeoutSeconds int    `envconfig:"PROBE_TIMEOUT_SECONDS"`
		MaxRetries          int    `envconfig:"MAX_RETRIES"`
		RetryDelaySeconds   int    `envconfig:"RETRY_DELAY_SECONDS"`
	} `envconfig:"BACKEND"`

	Session struct {
		// Backend selects where the device-local session blobs live:
		// "file" (default) or "redis".
		Backend  string `envconfig:"BACKEND"`
		FilePath string `envconfig:"FILE_PATH"`
	} `envconfig:"SESSION"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		applyDefaults(&conf)

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}

	if cfg.Backend.APIPrefix == "" {
		cfg.Backend.APIPrefix = "/api"
	}

	if cfg.Backend.RoutePrefix == "" {
		cfg.Backend.RoutePrefix = "/api-route"
	}

	// Timeout budgets carried over from the mobile client: generous defaults
	// to absorb emulator latency.
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 20
	}

	if cfg.Backend.WriteTimeoutSeconds == 0 {
		cfg.Backend.WriteTimeoutSeconds = 40
	}

	if cfg.Backend.ProbeTimeoutSeconds == 0 {
		cfg.Backend.ProbeTimeoutSeconds = 10
	}

	if cfg.Backend.MaxRetries == 0 {
		cfg.Backend.MaxRetries = 2
	}

	if cfg.Backend.RetryDelaySeconds == 0 {
		cfg.Backend.RetryDelaySeconds = 2
	}

	if cfg.Session.Backend == "" {
		cfg.Session.Backend = "file"
	}

	if cfg.Session.FilePath == "" {
		cfg.Session.FilePath = ".tonsor-session.json"
	}
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
