package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/model"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
)

const historyKey = "idea-buddy:ideas"

// RedisHistoryRepository keeps recent ideas in a Redis list, newest first.
type RedisHistoryRepository struct {
	rdb        redis.Cmdable
	ttl        time.Duration
	maxEntries int
}

func NewRedisHistoryRepository(rdb redis.Cmdable, ttl time.Duration, maxEntries int) *RedisHistoryRepository {
	return &RedisHistoryRepository{rdb: rdb, ttl: ttl, maxEntries: maxEntries}
}

func (r *RedisHistoryRepository) Add(ctx context.Context, record *model.IdeaRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		logx.Error().Err(err).Str("id", record.ID).Msg("failed to marshal idea record")
		return fmt.Errorf("marshal idea record: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, historyKey, b)
	if r.maxEntries > 0 {
		pipe.LTrim(ctx, historyKey, 0, int64(r.maxEntries-1))
	}
	// extend TTL on touch
	if r.ttl > 0 {
		pipe.Expire(ctx, historyKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to push idea to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisHistoryRepository) Recent(ctx context.Context, limit int) ([]*model.IdeaRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	rows, err := r.rdb.LRange(ctx, historyKey, 0, stop).Result()
	if err != nil {
		if err == redis.Nil {
			return []*model.IdeaRecord{}, nil
		}
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to load idea history from redis")
		return nil, errx.WrapRedis(err)
	}

	records := make([]*model.IdeaRecord, 0, len(rows))
	for i, s := range rows {
		var rec model.IdeaRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Error().Err(err).Int("index", i).Msg("failed to unmarshal idea record")
			return nil, fmt.Errorf("unmarshal idea record at index %d: %w", i, err)
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (r *RedisHistoryRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, historyKey).Err(); err != nil {
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to delete idea history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisHistoryRepository) Count(ctx context.Context) (int, error) {
	n, err := r.rdb.LLen(ctx, historyKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to get idea count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.HistoryRepository = (*RedisHistoryRepository)(nil)
