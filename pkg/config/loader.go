package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load populates the configuration struct from environment variables based on
// its `env` field tags. The default .env file is loaded once per process
// before the first parse; a missing .env file is not an error.
//
//	type APIConfig struct {
//	    BaseURL string        `env:"PHARMAGO_API_URL" envDefault:"http://localhost:8080"`
//	    Timeout time.Duration `env:"PHARMAGO_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. For configuration the
// program cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
