// Package redisdb stores each client namespace as one Redis hash, so several
// nexusweb replicas can share sessions.
package redisdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/patric-chuzhbe/nexusweb/internal/db/storage"
)

const keyPrefix = "nexus:storage:"

type RedisDB struct {
	client *redis.Client
}

// New connects to addr and pings it.
func New(ctx context.Context, addr, password string) (*RedisDB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("in internal/db/redisdb/redisdb.go/New(): error while `client.Ping()` calling: %w", err)
	}

	return &RedisDB{client: client}, nil
}

func hashKey(namespace string) string {
	return keyPrefix + namespace
}

func (db *RedisDB) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, storage.ErrEmptyNamespace
	}
	value, err := db.client.HGet(ctx, hashKey(namespace), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("in internal/db/redisdb/redisdb.go/GetItem(): error while `client.HGet()` calling: %w", err)
	}

	return value, true, nil
}

func (db *RedisDB) SetItem(ctx context.Context, namespace, key, value string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}
	if err := db.client.HSet(ctx, hashKey(namespace), key, value).Err(); err != nil {
		return fmt.Errorf("in internal/db/redisdb/redisdb.go/SetItem(): error while `client.HSet()` calling: %w", err)
	}

	return nil
}

func (db *RedisDB) RemoveItem(ctx context.Context, namespace, key string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}
	if err := db.client.HDel(ctx, hashKey(namespace), key).Err(); err != nil {
		return fmt.Errorf("in internal/db/redisdb/redisdb.go/RemoveItem(): error while `client.HDel()` calling: %w", err)
	}

	return nil
}

func (db *RedisDB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx).Err()
}

func (db *RedisDB) Close() error {
	return db.client.Close()
}
