package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/pkg/config"
)

func TestOptionsFromHostAndPort(t *testing.T) {
	opts, err := Options(config.RedisConfig{Host: "cache.ur.local", Port: 6380, DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache.ur.local:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
}

func TestOptionsPreferURL(t *testing.T) {
	opts, err := Options(config.RedisConfig{
		URL:         "redis://:secret@sessions.ur.local:6379/3",
		Host:        "ignored",
		Port:        1,
		DialTimeout: time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "sessions.ur.local:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, time.Second, opts.DialTimeout)

	opts, err = Options(config.RedisConfig{URL: "redis://sessions.ur.local:6379/3", Password: "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", opts.Password)
}

func TestOptionsRejectsBadURL(t *testing.T) {
	_, err := Options(config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestNewRedisFailsFastWhenUnreachable(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: 1, DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}
