package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// QuoteCache は料金見積もりのキャッシュを管理する
// レート表や予約状況が変わった客室は Invalidate で無効化する
type QuoteCache struct {
	client *redis.Client
}

// NewQuoteCache は新しいQuoteCacheインスタンスを作成する
func NewQuoteCache(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

// GetPrice は期間分の宿泊料金をキャッシュから取得する
func (c *QuoteCache) GetPrice(ctx context.Context, roomID string, from, to time.Time) (float64, error) {
	val, err := c.client.Get(ctx, c.quoteKey(roomID, from, to)).Float64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetPrice は宿泊料金をキャッシュに保存する
func (c *QuoteCache) SetPrice(ctx context.Context, roomID string, from, to time.Time, price float64, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.quoteKey(roomID, from, to), price, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は客室の見積もりキャッシュをまとめて無効化する
func (c *QuoteCache) Invalidate(ctx context.Context, roomID string) error {
	pattern := fmt.Sprintf("quote:%s:*", roomID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

// InvalidateAll は全客室の見積もりキャッシュを無効化する
// 季節係数や祝日の変更は全客室の料金に影響するため、客室単位では消せない
func (c *QuoteCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "quote:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *QuoteCache) quoteKey(roomID string, from, to time.Time) string {
	return fmt.Sprintf("quote:%s:%s:%s", roomID, dateutil.Format(from), dateutil.Format(to))
}
