package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/domain/notification"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
)

// LogSink は通知をログに書き出すだけの送信先実装
// メール・プッシュ通知などの実配送はこの実装を差し替えて行う
type LogSink struct{}

// NewLogSink はログ通知の送信先を作成する
func NewLogSink() *LogSink {
	return &LogSink{}
}

// NotifyBookingCreated は予約完了をログに記録する
func (s *LogSink) NotifyBookingCreated(ctx context.Context, userID, bookingID string) error {
	logger.Info("予約完了を通知",
		zap.String("user_id", userID),
		zap.String("booking_id", bookingID),
	)
	return nil
}

var _ notification.Sink = (*LogSink)(nil)
