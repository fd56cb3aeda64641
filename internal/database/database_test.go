package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := GetConfig()
	assert.Equal(t, "wastewise", cfg.Name)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=password dbname=wastewise sslmode=disable", cfg.DSN())
}

func TestInitRedis(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	mr := miniredis.RunT(t)
	viper.Set("redis.host", mr.Host())
	viper.Set("redis.port", mr.Port())

	client := InitRedis(context.Background(), RedisOptions(), zap.NewNop())
	require.NotNil(t, client)
	defer client.Close()
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestInitRedis_Unreachable(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts := RedisOptions()
	opts.Addr = addr
	opts.DialTimeout = 200 * time.Millisecond
	opts.MaxRetries = -1

	assert.Nil(t, InitRedis(context.Background(), opts, zap.NewNop()))
}
