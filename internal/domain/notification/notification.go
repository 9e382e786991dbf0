package notification

import "context"

// Sink は予約完了通知の送信先インターフェース
// ベストエフォートであり、失敗しても予約の成否には影響しない
type Sink interface {
	// NotifyBookingCreated は予約完了をユーザーに通知する
	NotifyBookingCreated(ctx context.Context, userID, bookingID string) error
}
