package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/platinummonkey/alloykit/pkg/linter"
)

// DefaultKeyPrefix namespaces alloykit keys in a shared Redis
const DefaultKeyPrefix = "alloykit:"

// RedisOptions configures a RedisStore
type RedisOptions struct {
	URL        string
	KeyPrefix  string
	TTL        time.Duration
	PoolSize   int
	MaxRetries int
}

// RedisStore keeps findings in Redis so several servers share them.
// Each document is a JSON value under <prefix>diagnostics:<uri>, and the set
// <prefix>documents indexes the stored URIs.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.MaxRetries > 0 {
		redisOpts.MaxRetries = opts.MaxRetries
	}
	redisOpts.DialTimeout = 5 * time.Second
	redisOpts.ReadTimeout = 3 * time.Second
	redisOpts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreFromClient(client, opts.KeyPrefix, opts.TTL), nil
}

// NewRedisStoreFromClient wraps an existing client. An empty prefix uses
// DefaultKeyPrefix; a zero TTL keeps entries until deleted.
func NewRedisStoreFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(uri string) string {
	return s.prefix + "diagnostics:" + uri
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "documents"
}

// Set replaces the findings for uri
func (s *RedisStore) Set(ctx context.Context, uri string, findings []linter.Finding) error {
	if findings == nil {
		findings = []linter.Finding{}
	}
	data, err := json.Marshal(findings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(uri), data, s.ttl)
		pipe.SAdd(ctx, s.indexKey(), uri)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Get returns the stored findings and whether any were stored
func (s *RedisStore) Get(ctx context.Context, uri string) ([]linter.Finding, bool, error) {
	key := s.key(uri)

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var findings []linter.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		// drop corrupt entries so the next analysis repopulates them
		s.client.Del(ctx, key)
		return nil, false, fmt.Errorf("failed to unmarshal findings: %w", err)
	}

	return findings, true, nil
}

// Delete removes the findings for uri
func (s *RedisStore) Delete(ctx context.Context, uri string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(uri))
		pipe.SRem(ctx, s.indexKey(), uri)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// URIs lists the documents with stored findings, sorted. Index entries
// whose value has expired are skipped.
func (s *RedisStore) URIs(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}

	uris := make([]string, 0, len(members))
	for _, uri := range members {
		n, err := s.client.Exists(ctx, s.key(uri)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis exists failed: %w", err)
		}
		if n == 0 {
			s.client.SRem(ctx, s.indexKey(), uri)
			continue
		}
		uris = append(uris, uri)
	}

	sort.Strings(uris)
	return uris, nil
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client returns the underlying client
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
