package testmaker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type (
	// RedisStore keeps the timeline library in a Redis the whole lab
	// shares. Writes are last-write-wins; a timeline has one author at a
	// time, so there is no version fencing
	RedisStore struct {
		client *redis.Client
		prefix string
		log    *zap.Logger
	}
)

const timelineKeyPart = ":timeline:"

// OpenRedisStore connects to Redis and verifies it answers before
// returning the store. A nil logger disables logging
func OpenRedisStore(
	ctx context.Context, cfg RedisConfig, log *zap.Logger,
) (*RedisStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		log:    log,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, tl *Timeline) error {
	doc, err := encodeDoc(tl)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(tl.Name), doc, 0).Err(); err != nil {
		return err
	}
	s.log.Debug("Timeline saved",
		zap.String("timeline", tl.Name),
		zap.Int("bytes", len(doc)),
	)
	return nil
}

func (s *RedisStore) Load(
	ctx context.Context, name string,
) (*Timeline, error) {
	doc, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc(doc)
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, s.key("*")).Result()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, s.key("")))
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return s.prefix + timelineKeyPart + name
}
