package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists credentials under <prefix>:access_token,
// <prefix>:refresh_token, and <prefix>:user. Keys carry no TTL: token
// lifetime is encoded inside the access token itself and enforced by the
// session client, matching how the console treats durable local storage.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gc"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	vals, err := s.client.MGet(ctx,
		s.key(KeyAccessToken),
		s.key(KeyRefreshToken),
		s.key(KeyUser),
	).Result()
	if err != nil {
		return Credentials{}, wrapUnavailable(err)
	}

	var creds Credentials
	if v, ok := vals[0].(string); ok {
		creds.AccessToken = v
	}
	if v, ok := vals[1].(string); ok {
		creds.RefreshToken = v
	}
	if v, ok := vals[2].(string); ok {
		creds.User = []byte(v)
	}
	return creds, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(KeyAccessToken), creds.AccessToken, 0)
		pipe.Set(ctx, s.key(KeyRefreshToken), creds.RefreshToken, 0)
		pipe.Set(ctx, s.key(KeyUser), creds.User, 0)
		return nil
	})
	if err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// SetAccessToken describes the setaccesstoken operation and its observable behavior.
//
// SetAccessToken may return an error when input validation, dependency calls, or security checks fail.
// SetAccessToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) SetAccessToken(ctx context.Context, accessToken string) error {
	if err := s.client.Set(ctx, s.key(KeyAccessToken), accessToken, 0).Err(); err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(KeyAccessToken), s.key(KeyRefreshToken), s.key(KeyUser))
		return nil
	})
	if err != nil {
		return wrapUnavailable(err)
	}
	return nil
}

func wrapUnavailable(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
