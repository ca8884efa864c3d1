package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	AllowOrigins    []string
	WSReadBuffer    int
	WSWriteBuffer   int
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    []string{"http://localhost:5173"},
		WSReadBuffer:    1024,
		WSWriteBuffer:   1024,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load overlays CHESS_* environment variables on the defaults.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("CHESS_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOW_ORIGINS"); ok && v != "" {
		cfg.AllowOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				// cors refuses a wildcard origin together with credentials
				return Config{}, fmt.Errorf("CHESS_ALLOW_ORIGINS: wildcard origin not allowed with credentials")
			}
			if origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	for key, dst := range map[string]*int{
		"CHESS_WS_READ_BUFFER":  &cfg.WSReadBuffer,
		"CHESS_WS_WRITE_BUFFER": &cfg.WSWriteBuffer,
	} {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid buffer size %q", key, v)
		}
		*dst = n
	}
	if v, ok := lookup("CHESS_SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

// Origins joins AllowOrigins the way fiber's cors middleware expects.
func (c Config) Origins() string {
	return strings.Join(c.AllowOrigins, ", ")
}
