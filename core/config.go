package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is the process-wide configuration. LoadConfig sets it once at startup;
// it is read-only afterwards.
var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default) | TEST | QA | PROD
		AppName  string
		Build    string

		SecretKey    string
		RollbarToken string

		Server  ServerConfig
		Gateway GatewayConfig
		Session SessionConfig
	}

	ServerConfig struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	// GatewayConfig points at the remote platform API that owns
	// authentication and all school resources.
	GatewayConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	// SessionConfig selects the session persistence backend.
	// Backend is one of: file (default), memory, redis, postgres.
	SessionConfig struct {
		Backend     string
		Dir         string
		RedisURL    string
		DatabaseURL string
	}
)

// LoadConfig reads configuration from the environment (and an optional
// config/.env.<env> file) into Conf.
func LoadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa Console")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "o2txj(+f0d$as8y-8&v8@j+1=k9#t^sg1x%5137ijm$bo)e&vq")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8700)
	v.SetDefault("server.shutdownTimeout", 20*time.Second)
	v.SetDefault("gateway.timeout", 15*time.Second)
	v.SetDefault("session.backend", "file")
	v.SetDefault("session.dir", defaultSessionDir())

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Gateway: GatewayConfig{
			BaseURL: v.GetString("gateway.baseUrl"),
			Timeout: v.GetDuration("gateway.timeout"),
		},
		Session: SessionConfig{
			Backend:     v.GetString("session.backend"),
			Dir:         v.GetString("session.dir"),
			RedisURL:    v.GetString("session.redisUrl"),
			DatabaseURL: v.GetString("session.databaseUrl"),
		},
	}
	return Conf
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "darasa")
	}
	return filepath.Join(Getwd(), ".darasa")
}
