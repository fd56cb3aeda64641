package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var envBindings = map[string]string{
	"database.host":           "DATABASE_HOST",
	"database.port":           "DATABASE_PORT",
	"database.user":           "DATABASE_USER",
	"database.password":       "DATABASE_PASSWORD",
	"database.name":           "DATABASE_NAME",
	"database.ssl_mode":       "DATABASE_SSL_MODE",
	"redis.host":              "REDIS_HOST",
	"redis.port":              "REDIS_PORT",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"jwt.secret_key":          "JWT_SECRET_KEY",
	"argon2.time":             "ARGON2_TIME",
	"argon2.memory":           "ARGON2_MEMORY",
	"argon2.threads":          "ARGON2_THREADS",
	"argon2.key_length":       "ARGON2_KEY_LENGTH",
	"argon2.salt_length":      "ARGON2_SALT_LENGTH",
	"nats.url":                "NATS_URL",
	"nats.subject":            "NATS_SUBJECT",
	"form.submit_delay":       "FORM_SUBMIT_DELAY",
	"form.draft_ttl":          "FORM_DRAFT_TTL",
	"form.lock_ttl":           "FORM_LOCK_TTL",
	"form.id_prefix":          "FORM_ID_PREFIX",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
	"server.port":             "PORT",
	"server.cors_origin":      "CORS_ORIGINS",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.idle_timeout":     "SERVER_IDLE_TIMEOUT",
	"server.request_timeout":  "SERVER_REQUEST_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
}

// Init reads the .env file at path, if any, and binds every config key to
// its environment variable. Environment values win over the file. A missing
// file is not an error.
func Init(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	// The env file is read under the variable names. Copy its values onto
	// the dotted keys unless the process environment already sets them.
	for key, env := range envBindings {
		fileKey := strings.ToLower(env)
		if _, inEnv := os.LookupEnv(env); inEnv || !viper.InConfig(fileKey) {
			continue
		}
		viper.Set(key, viper.Get(fileKey))
	}
	return nil
}

type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func LoadServerConfig() *ServerConfig {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.cors_origin", []string{"https://*", "http://*"})
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
	viper.SetDefault("server.request_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)

	return &ServerConfig{
		Port:            viper.GetString("server.port"),
		AllowedOrigins:  viper.GetStringSlice("server.cors_origin"),
		ReadTimeout:     viper.GetDuration("server.read_timeout"),
		WriteTimeout:    viper.GetDuration("server.write_timeout"),
		IdleTimeout:     viper.GetDuration("server.idle_timeout"),
		RequestTimeout:  viper.GetDuration("server.request_timeout"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
	}
}
