package pricing

import (
	"context"
	"math"
	"time"

	"github.com/CoolPrid/roomify/internal/domain/room"
	"github.com/CoolPrid/roomify/internal/pkg/dateutil"
)

const (
	weekendPremium = 1.3
	holidayPremium = 1.5

	longStayWeeklyDiscount   = 0.95
	longStayBiweeklyDiscount = 0.9
	longStayMonthlyDiscount  = 0.8

	earlyBooking30DaysDiscount = 0.97
	earlyBooking90DaysDiscount = 0.95

	demandFriday      = 1.2
	demandSaturday    = 1.25
	demandMidweekLow  = 0.9
	demandPremiumRoom = 1.1
)

// Engine は宿泊料金を計算する
// 客室カタログから基本料金とカテゴリを引き、未登録の客室は
// レート表とIDからの推定にフォールバックする
type Engine struct {
	rooms room.Repository
	rates *RateTable
	now   func() time.Time
}

// NewEngine は料金エンジンを作成する（roomsはnil可）
func NewEngine(rooms room.Repository, rates *RateTable) *Engine {
	return &Engine{rooms: rooms, rates: rates, now: time.Now}
}

// Rates はレート表を返す（管理操作用）
func (e *Engine) Rates() *RateTable {
	return e.rates
}

// CalculatePrice は期間 [from, to) の宿泊料金を計算する
// 不正な引数（空のID、逆転・同日の期間）の場合は0を返す
func (e *Engine) CalculatePrice(ctx context.Context, roomID string, from, to time.Time) float64 {
	if !validPricingRequest(roomID, from, to) {
		return 0
	}

	baseRate, category := e.resolveRoom(ctx, roomID)

	total := 0.0
	for d := dateutil.Day(from); d.Before(dateutil.Day(to)); d = d.AddDate(0, 0, 1) {
		total += e.nightPrice(baseRate, category, d)
	}

	nights := dateutil.Nights(from, to)
	total = applyLongStayDiscount(total, nights)
	total = e.applyEarlyBookingDiscount(total, from)

	return roundCents(total)
}

// NightPrice は1泊分の料金を計算する（滞在単位の割引は含まない）
func (e *Engine) NightPrice(ctx context.Context, roomID string, date time.Time) float64 {
	baseRate, category := e.resolveRoom(ctx, roomID)
	return e.nightPrice(baseRate, category, dateutil.Day(date))
}

// NightRate は日付ごとの内訳の1行
type NightRate struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceBreakdown は期間 [from, to) の日付ごとの料金内訳を返す
// 滞在単位の割引（連泊・早期予約）は適用しない
func (e *Engine) PriceBreakdown(ctx context.Context, roomID string, from, to time.Time) []NightRate {
	var breakdown []NightRate
	if roomID == "" || from.IsZero() || to.IsZero() {
		return breakdown
	}

	baseRate, category := e.resolveRoom(ctx, roomID)
	for d := dateutil.Day(from); d.Before(dateutil.Day(to)); d = d.AddDate(0, 0, 1) {
		breakdown = append(breakdown, NightRate{Date: d, Price: e.nightPrice(baseRate, category, d)})
	}
	return breakdown
}

// AverageNightlyRate は1泊あたりの平均料金を返す（泊数が0以下なら0）
func (e *Engine) AverageNightlyRate(ctx context.Context, roomID string, from, to time.Time) float64 {
	nights := dateutil.Nights(from, to)
	if nights <= 0 {
		return 0
	}
	return e.CalculatePrice(ctx, roomID, from, to) / float64(nights)
}

// resolveRoom は基本料金とカテゴリを決定する
// カタログにあればその値、なければレート表＋IDからの推定を使う
func (e *Engine) resolveRoom(ctx context.Context, roomID string) (float64, room.Category) {
	if e.rooms != nil {
		if r, err := e.rooms.GetByID(ctx, roomID); err == nil {
			return r.BasePrice, r.Category
		}
	}
	return e.rates.BaseRate(roomID), room.CategoryFromID(roomID)
}

// nightPrice は1泊分の料金を合成する
// 係数は順に乗算する: 基本料金 → 週末 → シーズン → 祝日 → 需要
func (e *Engine) nightPrice(baseRate float64, category room.Category, date time.Time) float64 {
	price := baseRate

	if isWeekendNight(date) {
		price *= weekendPremium
	}

	price *= e.rates.SeasonalMultiplier(date)

	if e.rates.IsHoliday(date) {
		price *= holidayPremium
	}

	price *= demandMultiplier(category, date)

	return price
}

// demandMultiplier は需要係数を返す
// 先勝ちの優先順で1つだけ適用し、重ねない
func demandMultiplier(category room.Category, date time.Time) float64 {
	switch date.Weekday() {
	case time.Friday:
		return demandFriday
	case time.Saturday:
		return demandSaturday
	case time.Tuesday, time.Wednesday:
		return demandMidweekLow
	}
	if category.IsPremium() {
		return demandPremiumRoom
	}
	return 1.0
}

func isWeekendNight(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

func applyLongStayDiscount(total float64, nights int) float64 {
	switch {
	case nights >= 28:
		return total * longStayMonthlyDiscount
	case nights >= 14:
		return total * longStayBiweeklyDiscount
	case nights >= 7:
		return total * longStayWeeklyDiscount
	}
	return total
}

func (e *Engine) applyEarlyBookingDiscount(total float64, checkIn time.Time) float64 {
	daysInAdvance := dateutil.Nights(e.now(), checkIn)
	switch {
	case daysInAdvance >= 90:
		return total * earlyBooking90DaysDiscount
	case daysInAdvance >= 30:
		return total * earlyBooking30DaysDiscount
	}
	return total
}

func validPricingRequest(roomID string, from, to time.Time) bool {
	return roomID != "" && !from.IsZero() && !to.IsZero() && dateutil.Nights(from, to) > 0
}

// roundCents はセント単位に四捨五入する
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
