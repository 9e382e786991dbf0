package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPromoSweeper はPromoSweeperのモック
type MockPromoSweeper struct {
	mock.Mock
}

func (m *MockPromoSweeper) RemoveExpiredPromoCodes() int {
	args := m.Called()
	return args.Int(0)
}

func TestNewExpiredPromoSweeper(t *testing.T) {
	mockDiscounts := new(MockPromoSweeper)
	interval := 1 * time.Hour

	sweeper := NewExpiredPromoSweeper(mockDiscounts, interval)

	assert.NotNil(t, sweeper)
	assert.Equal(t, interval, sweeper.interval)
	assert.NotNil(t, sweeper.stopCh)
	assert.NotNil(t, sweeper.doneCh)
}

func TestExpiredPromoSweeper_Sweep(t *testing.T) {
	t.Run("期限切れコードが削除される", func(t *testing.T) {
		mockDiscounts := new(MockPromoSweeper)
		mockDiscounts.On("RemoveExpiredPromoCodes").Return(2)

		sweeper := NewExpiredPromoSweeper(mockDiscounts, 1*time.Hour)
		sweeper.sweep()

		mockDiscounts.AssertExpectations(t)
	})

	t.Run("削除対象がない場合も正常に動作する", func(t *testing.T) {
		mockDiscounts := new(MockPromoSweeper)
		mockDiscounts.On("RemoveExpiredPromoCodes").Return(0)

		sweeper := NewExpiredPromoSweeper(mockDiscounts, 1*time.Hour)
		sweeper.sweep()

		mockDiscounts.AssertExpectations(t)
	})
}

func TestExpiredPromoSweeper_StartStop(t *testing.T) {
	t.Run("開始と停止が正常に動作する", func(t *testing.T) {
		mockDiscounts := new(MockPromoSweeper)
		mockDiscounts.On("RemoveExpiredPromoCodes").Return(0).Maybe()

		sweeper := NewExpiredPromoSweeper(mockDiscounts, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go sweeper.Start(ctx)

		time.Sleep(120 * time.Millisecond)
		sweeper.Stop()

		select {
		case <-sweeper.doneCh:
			// 正常に終了
		case <-time.After(1 * time.Second):
			t.Error("sweeper did not stop in time")
		}
	})

	t.Run("コンテキストキャンセルで停止する", func(t *testing.T) {
		mockDiscounts := new(MockPromoSweeper)
		mockDiscounts.On("RemoveExpiredPromoCodes").Return(0).Maybe()

		sweeper := NewExpiredPromoSweeper(mockDiscounts, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			sweeper.Start(ctx)
			close(done)
		}()

		cancel()

		select {
		case <-done:
			// 正常に終了
		case <-time.After(1 * time.Second):
			t.Error("sweeper did not stop on context cancel")
		}
	})
}
