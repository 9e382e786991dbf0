package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound  = errors.New("予約が見つかりません")
	ErrRoomIDRequired   = errors.New("客室IDは必須です")
	ErrUserIDRequired   = errors.New("ユーザーIDは必須です")
	ErrInvalidDateRange = errors.New("チェックイン日はチェックアウト日より前である必要があります")
	ErrNegativePrice    = errors.New("料金は0以上である必要があります")
)
