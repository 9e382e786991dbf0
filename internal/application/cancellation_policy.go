package application

// CancellationPolicy はキャンセル時の返金額を決める
// 現行ポリシーは全額没収（返金0）。段階的な返金率を導入する際は
// ここに実装する
type CancellationPolicy struct{}

// NewCancellationPolicy はキャンセルポリシーを作成する
func NewCancellationPolicy() *CancellationPolicy {
	return &CancellationPolicy{}
}

// RefundAmount は予約の返金額を返す
func (p *CancellationPolicy) RefundAmount(bookingID string) float64 {
	return 0
}
