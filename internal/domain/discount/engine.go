package discount

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

const (
	vipMultiplier       = 0.90
	firstTimeMultiplier = 0.95
	longStayMultiplier  = 0.85
	weekendMultiplier   = 0.92

	longStayMinNights = 7

	// MaxDiscountRate は割引の合計上限（事前価格の60%）
	MaxDiscountRate = 0.60
	// MinFinalPrice は割引後の最低価格
	MinFinalPrice = 10.0
)

// Segment は顧客セグメントを表す
type Segment string

const (
	SegmentRegular   Segment = "regular"
	SegmentFirstTime Segment = "first_time"
)

// SegmentFromID はユーザーIDからセグメントを推定する
// 旧来の文字列一致（"new-" 接頭辞・"first" を含むか）と同じ判定表を保つ
func SegmentFromID(userID string) Segment {
	if strings.HasPrefix(userID, "new-") || strings.Contains(userID, "first") {
		return SegmentFirstTime
	}
	return SegmentRegular
}

// PromoCode はプロモーションコードを表す
// ExpiresAt がnilのコードは無期限
type PromoCode struct {
	Code      string
	Fraction  float64
	ExpiresAt *time.Time
}

// Expired はコードが期限切れかを返す
func (p PromoCode) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// Result は割引計算の結果を表す
type Result struct {
	BasePrice  float64
	FinalPrice float64
	Applied    []string
	Capped     bool
}

// Engine は顧客向け割引を計算する
// VIP集合とプロモーションコード表は管理操作で変更されるため
// ロックで保護する
type Engine struct {
	mu     sync.RWMutex
	vips   map[string]struct{}
	promos map[string]PromoCode
	now    func() time.Time
}

// NewEngine は既定のVIPとプロモーションコード入りのエンジンを作成する
func NewEngine() *Engine {
	e := &Engine{
		vips:   make(map[string]struct{}),
		promos: make(map[string]PromoCode),
		now:    time.Now,
	}
	for _, id := range []string{"vip-user-1", "vip-user-2", "premium-customer"} {
		e.vips[id] = struct{}{}
	}
	e.promos["WELCOME10"] = PromoCode{Code: "WELCOME10", Fraction: 0.10}
	e.promos["SAVE20"] = PromoCode{Code: "SAVE20", Fraction: 0.20}
	e.promos["SUMMER25"] = PromoCode{Code: "SUMMER25", Fraction: 0.25}

	// 旧実装の「EXPIRED」コードと同じ観測挙動（常に無効）を保つ
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	e.promos["EXPIRED"] = PromoCode{Code: "EXPIRED", Fraction: 0.50, ExpiresAt: &past}

	return e
}

// Apply は割引適用後の価格を返す
// checkIn/checkOutが未指定（ゼロ値）の場合、滞在系の割引は評価しない
func (e *Engine) Apply(userID string, basePrice float64, promoCode string, checkIn, checkOut time.Time) float64 {
	return e.Quote(userID, basePrice, promoCode, checkIn, checkOut).FinalPrice
}

// Quote は適用された割引の内訳付きで割引計算を行う
// 要因は固定の順序で乗算合成し、最後に上限60%と下限10.0を適用する
func (e *Engine) Quote(userID string, basePrice float64, promoCode string, checkIn, checkOut time.Time) Result {
	res := Result{BasePrice: basePrice}
	if basePrice <= 0 {
		return res
	}

	e.mu.RLock()
	_, isVIP := e.vips[userID]
	promo, promoOK := e.promos[promoCode]
	e.mu.RUnlock()

	price := basePrice

	// 1. VIP顧客
	if isVIP {
		price *= vipMultiplier
		res.Applied = append(res.Applied, "vip")
	}

	// 2. 初回顧客
	if SegmentFromID(userID) == SegmentFirstTime {
		price *= firstTimeMultiplier
		res.Applied = append(res.Applied, "first_time")
	}

	// 3. プロモーションコード
	if promoCode != "" && promoOK && !promo.Expired(e.now()) {
		price *= 1.0 - promo.Fraction
		res.Applied = append(res.Applied, "promo:"+promo.Code)
	}

	// 4. 連泊（7泊以上）
	if !checkIn.IsZero() && !checkOut.IsZero() && dateutil.Nights(checkIn, checkOut) >= longStayMinNights {
		price *= longStayMultiplier
		res.Applied = append(res.Applied, "long_stay")
	}

	// 5. 週末チェックイン（金・土・日）
	if !checkIn.IsZero() && isWeekendCheckIn(checkIn) {
		price *= weekendMultiplier
		res.Applied = append(res.Applied, "weekend")
	}

	// 割引合計の上限: 事前価格の60%を超えない
	if basePrice-price > basePrice*MaxDiscountRate {
		price = basePrice - basePrice*MaxDiscountRate
		res.Capped = true
	}

	// 最低価格の下限
	price = math.Max(price, MinFinalPrice)

	res.FinalPrice = math.Round(price*100) / 100
	return res
}

// IsVIP はユーザーがVIPかを返す
func (e *Engine) IsVIP(userID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.vips[userID]
	return ok
}

// AddVIP はVIPユーザーを追加する
func (e *Engine) AddVIP(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vips[userID] = struct{}{}
}

// RemoveVIP はVIPユーザーを削除する
func (e *Engine) RemoveVIP(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vips, userID)
}

// AddPromoCode はプロモーションコードを追加または更新する
// expiresAtがnilのコードは無期限
func (e *Engine) AddPromoCode(code string, fraction float64, expiresAt *time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.promos[code] = PromoCode{Code: code, Fraction: fraction, ExpiresAt: expiresAt}
}

// RemoveExpiredPromoCodes は期限切れのコードを表から削除し、件数を返す
func (e *Engine) RemoveExpiredPromoCodes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	removed := 0
	for code, promo := range e.promos {
		if promo.Expired(now) {
			delete(e.promos, code)
			removed++
		}
	}
	return removed
}

func isWeekendCheckIn(checkIn time.Time) bool {
	switch checkIn.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}
