package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/pkg/logger"
)

// PromoSweeper は期限切れプロモーションコードを削除するインターフェース
type PromoSweeper interface {
	RemoveExpiredPromoCodes() int
}

// ExpiredPromoSweeper は期限切れプロモーションコードを定期的に掃除するワーカー
type ExpiredPromoSweeper struct {
	discounts PromoSweeper
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewExpiredPromoSweeper は新しいスイーパーを作成する
func NewExpiredPromoSweeper(discounts PromoSweeper, interval time.Duration) *ExpiredPromoSweeper {
	return &ExpiredPromoSweeper{
		discounts: discounts,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start はスイーパーを開始する
func (s *ExpiredPromoSweeper) Start(ctx context.Context) {
	logger.Info("期限切れプロモーションコードスイーパー開始",
		zap.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("プロモーションコードスイーパー停止（コンテキストキャンセル）")
			return
		case <-s.stopCh:
			logger.Info("プロモーションコードスイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// Stop はスイーパーを停止する
func (s *ExpiredPromoSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// sweep は期限切れコードを削除する
func (s *ExpiredPromoSweeper) sweep() {
	log := logger.Get()
	log.Debug("期限切れプロモーションコードの掃除開始")

	removed := s.discounts.RemoveExpiredPromoCodes()
	if removed > 0 {
		log.Info("期限切れプロモーションコードを削除", zap.Int("count", removed))
	} else {
		log.Debug("期限切れプロモーションコードなし")
	}
}
