package cache

import (
	"context"
	"encoding/json"
	"metro-ticketing/internal/routing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	graphKeyAll     = "metro:graph:all"
	graphKeyEnabled = "metro:graph:enabled"

	// 快照仍設 TTL 當保險，主要的失效機制是路網異動時的 Invalidate
	graphSnapshotTTL = 24 * time.Hour
)

// GraphCache 路網快照的讀穿快取。路網很小，錯過快取就從資料庫重建，
// 所以這裡的錯誤一律當作 cache miss 處理，不讓快取壞掉拖垮請求。
type GraphCache interface {
	Get(ctx context.Context, onlyEnabled bool) (*routing.NetworkSnapshot, error)
	Set(ctx context.Context, onlyEnabled bool, snapshot *routing.NetworkSnapshot) error
	// Invalidate 路網異動(車站/路線/連線)後呼叫，兩份快照一起清
	Invalidate(ctx context.Context) error
}

type GraphCacheImpl struct {
	client *redis.Client
}

func NewGraphCache(client *redis.Client) GraphCache {
	return &GraphCacheImpl{
		client: client,
	}
}

func graphKey(onlyEnabled bool) string {
	if onlyEnabled {
		return graphKeyEnabled
	}
	return graphKeyAll
}

func (c *GraphCacheImpl) Get(ctx context.Context, onlyEnabled bool) (*routing.NetworkSnapshot, error) {
	val, err := c.client.Get(ctx, graphKey(onlyEnabled)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot routing.NetworkSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (c *GraphCacheImpl) Set(ctx context.Context, onlyEnabled bool, snapshot *routing.NetworkSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, graphKey(onlyEnabled), data, graphSnapshotTTL).Err()
}

func (c *GraphCacheImpl) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, graphKeyAll, graphKeyEnabled).Err()
}
