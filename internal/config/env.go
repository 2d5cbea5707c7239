package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const envFileVar = "SERVER_ENV_FILE"

// newEnv returns a viper instance reading straight from the process environment.
// Keys are the literal ENV variable names, defaults are supplied by the caller.
func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	return v
}

func envString(v *viper.Viper, key string, defaultVal string) string {
	v.SetDefault(key, defaultVal)
	return v.GetString(key)
}

func envInt(v *viper.Viper, key string, defaultVal int) int {
	v.SetDefault(key, defaultVal)
	return v.GetInt(key)
}

func envUint64(v *viper.Viper, key string, defaultVal uint64) uint64 {
	v.SetDefault(key, defaultVal)
	return v.GetUint64(key)
}

func envFloat(v *viper.Viper, key string, defaultVal float64) float64 {
	v.SetDefault(key, defaultVal)
	return v.GetFloat64(key)
}

func envBool(v *viper.Viper, key string, defaultVal bool) bool {
	v.SetDefault(key, defaultVal)
	return v.GetBool(key)
}

func envDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	v.SetDefault(key, defaultVal)
	return v.GetDuration(key)
}

// envStringSlice splits a comma separated ENV value, dropping empty items.
func envStringSlice(v *viper.Viper, key string, defaultVal []string) []string {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultVal
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func envLogLevel(v *viper.Viper, key string, defaultVal zerolog.Level) zerolog.Level {
	raw := envString(v, key, defaultVal.String())

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", raw).Msg("Invalid log level, falling back to default")
		return defaultVal
	}

	return level
}

// DotEnvTryOverload loads the .env file referenced by SERVER_ENV_FILE (if set and present)
// and overrides already set ENV variables with its values.
func DotEnvTryOverload() {
	path := os.Getenv(envFileVar)
	if path == "" {
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to resolve env file path")
		return
	}

	if _, err := os.Stat(abs); err != nil {
		log.Debug().Str("path", abs).Msg("No env file found, skipping")
		return
	}

	if err := gotenv.OverLoad(abs); err != nil {
		log.Warn().Err(err).Str("path", abs).Msg("Failed to load env file")
		return
	}

	log.Info().Str("path", abs).Msg("Loaded env file")
}
