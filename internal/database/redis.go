package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RedisOptions reads redis.* settings with defaults.
func RedisOptions() *redis.Options {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	return &redis.Options{
		Addr:     viper.GetString("redis.host") + ":" + viper.GetString("redis.port"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}
}

// InitRedis connects to Redis. It returns nil when Redis cannot be reached;
// callers then fall back to in-process state.
func InitRedis(ctx context.Context, opts *redis.Options, logger *zap.Logger) *redis.Client {
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed, continuing without Redis", zap.Error(err), zap.String("addr", opts.Addr))
		rdb.Close()
		return nil
	}

	logger.Info("redis connection established", zap.String("addr", opts.Addr))
	return rdb
}
