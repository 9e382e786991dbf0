package payment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/domain/payment"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
)

// AutoApproveGateway は請求を常に承認するゲートウェイ実装
// 本番の決済プロバイダーが繋がるまでのローカル・検証環境用
type AutoApproveGateway struct{}

// NewAutoApproveGateway はゲートウェイを作成する
func NewAutoApproveGateway() *AutoApproveGateway {
	return &AutoApproveGateway{}
}

// Charge はユーザーに請求する
// 金額が0以下の請求は承認しない
func (g *AutoApproveGateway) Charge(ctx context.Context, userID string, amount float64) (*payment.Result, error) {
	if amount <= 0 {
		return &payment.Result{Success: false}, nil
	}

	txID := uuid.New().String()
	logger.Info("決済を承認",
		zap.String("user_id", userID),
		zap.Float64("amount", amount),
		zap.String("transaction_id", txID),
	)
	return &payment.Result{Success: true, TransactionID: txID}, nil
}

var _ payment.Gateway = (*AutoApproveGateway)(nil)
