package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CoolPrid/roomify/internal/domain/availability"
	"github.com/CoolPrid/roomify/internal/domain/booking"
	"github.com/CoolPrid/roomify/internal/domain/discount"
	"github.com/CoolPrid/roomify/internal/domain/notification"
	"github.com/CoolPrid/roomify/internal/domain/payment"
	"github.com/CoolPrid/roomify/internal/domain/pricing"
	redisinfra "github.com/CoolPrid/roomify/internal/infrastructure/redis"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
	"github.com/CoolPrid/roomify/internal/pkg/logger"
	"github.com/CoolPrid/roomify/internal/pkg/metrics"
)

// InvoiceGenerator はプロセス内で一意な請求書IDを発行するインターフェース
type InvoiceGenerator interface {
	GenerateInvoiceID() string
}

// BookingService は予約フローを編成する
// 検証 → 空室確認 → 料金計算 → 割引 → 決済 → 永続化 → 通知の順に
// 各エンジンと外部コラボレータを呼び出すだけで、自身はルールを持たない
type BookingService struct {
	bookings     booking.Repository
	availability *availability.Engine
	pricing      *pricing.Engine
	discounts    *discount.Engine
	payments     payment.Gateway
	notifier     notification.Sink
	invoices     InvoiceGenerator
	policy       *CancellationPolicy
	lockManager  *redisinfra.LockManager
	quotes       *redisinfra.QuoteCache
	metrics      *metrics.Metrics
}

// NewBookingService は予約サービスを作成する
// notifier・invoices・lockManager・m はnil可（その機能が無効になる）
func NewBookingService(
	bookings booking.Repository,
	av *availability.Engine,
	pr *pricing.Engine,
	dc *discount.Engine,
	payments payment.Gateway,
	notifier notification.Sink,
	invoices InvoiceGenerator,
	lockManager *redisinfra.LockManager,
	quotes *redisinfra.QuoteCache,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		availability: av,
		pricing:      pr,
		discounts:    dc,
		payments:     payments,
		notifier:     notifier,
		invoices:     invoices,
		policy:       NewCancellationPolicy(),
		lockManager:  lockManager,
		quotes:       quotes,
		metrics:      m,
	}
}

// CreateBookingInput は予約作成の入力
type CreateBookingInput struct {
	RoomID    string
	UserID    string
	CheckIn   time.Time
	CheckOut  time.Time
	PromoCode string
}

// CreateBooking は予約を作成する
// 決済が失敗した場合は何も永続化しない。予約後の通知・請求書発行は
// ベストエフォートであり、失敗しても予約は成立したままになる
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	if err := validateInput(input); err != nil {
		s.countBooking("validation_failed")
		return nil, err
	}

	checkIn, checkOut := dateutil.Day(input.CheckIn), dateutil.Day(input.CheckOut)

	// 同一客室への並行予約で空室確認と永続化の間が競合しないよう
	// 客室単位のロックを取る（Redis未接続なら単一インスタンス前提で省略）
	if s.lockManager != nil {
		start := time.Now()
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, roomLockKey(input.RoomID), 10*time.Second, 3, 100*time.Millisecond)
		s.observeLock("acquire", start, err)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.countBooking("lock_failed")
				return nil, fmt.Errorf("客室が他のユーザーによって処理中です: %w", ErrRoomNotAvailable)
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer func() {
			start := time.Now()
			s.observeLock("release", start, lock.Release(ctx))
		}()
	}

	if !s.availability.IsAvailable(ctx, input.RoomID, checkIn, checkOut) {
		s.countBooking("unavailable")
		return nil, ErrRoomNotAvailable
	}

	basePrice := s.pricing.CalculatePrice(ctx, input.RoomID, checkIn, checkOut)

	// 連泊・チェックイン曜日は料金エンジンが事前価格に織り込み済み。
	// ここでは顧客属性（VIP・初回・プロモ）の割引のみを適用する
	quote := s.discounts.Quote(input.UserID, basePrice, input.PromoCode, time.Time{}, time.Time{})
	s.countDiscounts(quote.Applied)

	result, err := s.payments.Charge(ctx, input.UserID, quote.FinalPrice)
	if err != nil {
		s.countBooking("payment_error")
		return nil, fmt.Errorf("決済リクエストに失敗: %w", err)
	}
	if !result.Success {
		s.countBooking("payment_declined")
		return nil, payment.ErrPaymentFailed
	}

	b := booking.NewBooking(input.RoomID, input.UserID, checkIn, checkOut, quote.FinalPrice)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("予約の保存に失敗: %w", err)
	}

	s.countBooking("created")
	if s.metrics != nil {
		s.metrics.BookingPrice.Observe(b.Price)
	}
	s.invalidateQuotes(ctx, b.RoomID)

	go s.postBookingTasks(b)

	return b, nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// GetUserBookings はユーザーの予約一覧を取得する
func (s *BookingService) GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.GetByUserID(ctx, userID, limit, offset)
}

// CancelBooking は予約を削除し、返金額を返す
func (s *BookingService) CancelBooking(ctx context.Context, id string) (float64, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	refund := s.policy.RefundAmount(id)
	if err := s.bookings.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("予約の削除に失敗: %w", err)
	}
	s.countBooking("cancelled")
	s.invalidateQuotes(ctx, b.RoomID)
	return refund, nil
}

// invalidateQuotes は客室の見積もりキャッシュを無効化する
// 失敗してもTTLで自然に消えるため、ログに残すのみとする
func (s *BookingService) invalidateQuotes(ctx context.Context, roomID string) {
	if s.quotes == nil {
		return
	}
	if err := s.quotes.Invalidate(ctx, roomID); err != nil {
		logger.Warn("見積もりキャッシュ無効化に失敗", zap.String("room_id", roomID), zap.Error(err))
	}
}

// postBookingTasks は予約後の通知と請求書発行を行う
// 失敗はログに残すのみで、予約の成否には影響しない
func (s *BookingService) postBookingTasks(b *booking.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, b.UserID, b.ID); err != nil {
			logger.Warn("予約完了通知に失敗",
				zap.String("booking_id", b.ID),
				zap.String("user_id", b.UserID),
				zap.Error(err),
			)
		}
	}
	if s.invoices != nil {
		invoiceID := s.invoices.GenerateInvoiceID()
		logger.Info("請求書IDを発行",
			zap.String("booking_id", b.ID),
			zap.String("invoice_id", invoiceID),
		)
	}
}

// observeLock はロック操作の所要時間をメトリクスに記録する
func (s *BookingService) observeLock(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.RoomLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

func (s *BookingService) countBooking(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) countDiscounts(applied []string) {
	if s.metrics == nil {
		return
	}
	for _, name := range applied {
		// ラベルの基数を抑えるためコード名は落とす（"promo:SAVE20" → "promo"）
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		s.metrics.DiscountsAppliedTotal.WithLabelValues(name).Inc()
	}
}

func validateInput(input CreateBookingInput) error {
	if input.RoomID == "" {
		return booking.ErrRoomIDRequired
	}
	if input.UserID == "" {
		return booking.ErrUserIDRequired
	}
	if dateutil.Nights(input.CheckIn, input.CheckOut) < 1 {
		return booking.ErrInvalidDateRange
	}
	return nil
}

func roomLockKey(roomID string) string {
	return "room:" + roomID
}
