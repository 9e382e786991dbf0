package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/discount"
	"github.com/CoolPrid/roomify/internal/domain/pricing"
	redisinfra "github.com/CoolPrid/roomify/internal/infrastructure/redis"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
)

// quoteCacheTTL は料金見積もりキャッシュの有効期間
// レート表の管理変更が反映されるまでの遅延の上限になる
const quoteCacheTTL = 5 * time.Minute

// QuoteService は予約前の料金見積もりを提供する
type QuoteService struct {
	pricing   *pricing.Engine
	discounts *discount.Engine
	cache     *redisinfra.QuoteCache
}

// NewQuoteService は見積もりサービスを作成する（cacheはnil可）
func NewQuoteService(pr *pricing.Engine, dc *discount.Engine, cache *redisinfra.QuoteCache) *QuoteService {
	return &QuoteService{pricing: pr, discounts: dc, cache: cache}
}

// Quote は料金見積もりの結果
type Quote struct {
	RoomID           string              `json:"room_id"`
	CheckIn          time.Time           `json:"check_in"`
	CheckOut         time.Time           `json:"check_out"`
	Nights           int                 `json:"nights"`
	BasePrice        float64             `json:"base_price"`
	FinalPrice       float64             `json:"final_price"`
	AverageNightly   float64             `json:"average_nightly"`
	Breakdown        []pricing.NightRate `json:"breakdown"`
	AppliedDiscounts []string            `json:"applied_discounts"`
}

// GetQuote は期間分の料金を見積もる
// 割引前の合計はキャッシュし、顧客ごとの割引は毎回計算する
func (s *QuoteService) GetQuote(ctx context.Context, roomID, userID, promoCode string, checkIn, checkOut time.Time) (*Quote, error) {
	checkIn, checkOut = dateutil.Day(checkIn), dateutil.Day(checkOut)
	nights := dateutil.Nights(checkIn, checkOut)
	if roomID == "" || nights < 1 {
		return nil, booking.ErrInvalidDateRange
	}

	basePrice, cached := s.cachedPrice(ctx, roomID, checkIn, checkOut)
	if !cached {
		basePrice = s.pricing.CalculatePrice(ctx, roomID, checkIn, checkOut)
		s.storePrice(ctx, roomID, checkIn, checkOut, basePrice)
	}

	// 予約時の請求額と一致させるため、割引は顧客属性のみを評価する
	// （滞在系の割引は事前価格に織り込み済み）
	result := s.discounts.Quote(userID, basePrice, promoCode, time.Time{}, time.Time{})

	return &Quote{
		RoomID:           roomID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Nights:           nights,
		BasePrice:        basePrice,
		FinalPrice:       result.FinalPrice,
		AverageNightly:   s.pricing.AverageNightlyRate(ctx, roomID, checkIn, checkOut),
		Breakdown:        s.pricing.PriceBreakdown(ctx, roomID, checkIn, checkOut),
		AppliedDiscounts: result.Applied,
	}, nil
}

func (s *QuoteService) cachedPrice(ctx context.Context, roomID string, from, to time.Time) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	price, err := s.cache.GetPrice(ctx, roomID, from, to)
	if err != nil {
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("見積もりキャッシュ取得に失敗", zap.String("room_id", roomID), zap.Error(err))
		}
		return 0, false
	}
	return price, true
}

func (s *QuoteService) storePrice(ctx context.Context, roomID string, from, to time.Time, price float64) {
	if s.cache == nil || price <= 0 {
		return
	}
	if err := s.cache.SetPrice(ctx, roomID, from, to, price, quoteCacheTTL); err != nil {
		logger.Warn("見積もりキャッシュ保存に失敗", zap.String("room_id", roomID), zap.Error(err))
	}
}
