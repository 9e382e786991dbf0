package booking

import (
	"context"
	"time"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Save は予約を保存し、IDを採番する
	Save(ctx context.Context, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByRoomID は客室の予約一覧を取得する（空室判定で使用）
	GetByRoomID(ctx context.Context, roomID string) ([]*Booking, error)

	// GetByUserID はユーザーの予約一覧を取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Booking, error)

	// GetOverlapping は期間 [from, to) と重なる予約一覧を取得する（集計で使用）
	GetOverlapping(ctx context.Context, from, to time.Time) ([]*Booking, error)

	// Delete は予約を削除する
	Delete(ctx context.Context, id string) error
}
