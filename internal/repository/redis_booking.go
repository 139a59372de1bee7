package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Records are stored as a hash with the raw value and a version counter.
var writeRecordScript = redis.NewScript(`
    -- KEYS = [record key]
    -- ARGV = [expected version, value]

    local current = tonumber(redis.call("HGET", KEYS[1], "version") or "0")

    if current ~= tonumber(ARGV[1]) then
        return {err = "version conflict"}
    end

    redis.call("HSET", KEYS[1], "value", ARGV[2], "version", current + 1)

    return current + 1
`)

type RedisBookingStore struct {
	client redis.UniversalClient
}

func NewRedisBookingStore(client redis.UniversalClient) *RedisBookingStore {
	return &RedisBookingStore{
		client: client,
	}
}

func (s *RedisBookingStore) Read(ctx context.Context, key string) (*domain.Record, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	version, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		// a record without a usable version is treated as never written
		version = 0
	}

	return &domain.Record{
		Value:   []byte(fields["value"]),
		Version: version,
	}, nil
}

func (s *RedisBookingStore) Write(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	newVersion, err := writeRecordScript.Run(ctx, s.client, []string{key}, version, value).Int64()
	if err != nil {
		if redis.HasErrorPrefix(err, "version conflict") {
			return 0, domain.ErrEditConflict
		}

		return 0, errors.Join(errors.New("redis booking write failed"), err)
	}

	return newVersion, nil
}
