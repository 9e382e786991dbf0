package payment

import (
	"context"
	"errors"
)

// ErrPaymentFailed は決済が承認されなかったことを表す
var ErrPaymentFailed = errors.New("決済に失敗しました")

// Result は決済結果を表す
type Result struct {
	Success       bool
	TransactionID string
}

// Gateway は決済ゲートウェイのインターフェース
// 実装は外部サービスへの同期呼び出しであり、失敗しうる
type Gateway interface {
	// Charge はユーザーに請求する
	Charge(ctx context.Context, userID string, amount float64) (*Result, error)
}
