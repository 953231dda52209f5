package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
)

// redisKey is the hash holding the registry; fields are flattened handles,
// values JSON-encoded accounts. A single hash keeps ReplaceAll atomic via
// DEL+HSET in one pipeline.
const redisKey = "callgate:accounts"

// RedisStore backs the registry with Redis so multiple callgate instances
// behind one call manager observe the same registry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func field(handle domain.AccountHandle) string {
	return handle.String()
}

func (s *RedisStore) List(ctx context.Context) ([]domain.Account, error) {
	values, err := s.client.HVals(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]domain.Account, 0, len(values))
	for _, v := range values {
		var a domain.Account
		if err := json.Unmarshal([]byte(v), &a); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, handle domain.AccountHandle) (domain.Account, error) {
	v, err := s.client.HGet(ctx, redisKey, field(handle)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	var a domain.Account
	if err := json.Unmarshal([]byte(v), &a); err != nil {
		return domain.Account{}, fmt.Errorf("decode account: %w", err)
	}
	return a, nil
}

func (s *RedisStore) Put(ctx context.Context, account domain.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := s.client.HSet(ctx, redisKey, field(account.Handle), raw).Err(); err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, handle domain.AccountHandle) error {
	n, err := s.client.HDel(ctx, redisKey, field(handle)).Result()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *RedisStore) ReplaceAll(ctx context.Context, accounts []domain.Account) error {
	pairs := make([]any, 0, len(accounts)*2)
	for _, a := range accounts {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encode account: %w", err)
		}
		pairs = append(pairs, field(a.Handle), raw)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKey)
	if len(pairs) > 0 {
		pipe.HSet(ctx, redisKey, pairs...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	return nil
}
