package dateutil

import "time"

// Layout は宿泊日付の文字列表現のフォーマット
const Layout = "2006-01-02"

// Day は時刻情報を落とし、UTCの暦日に正規化する
// 宿泊日付はすべてこの形式で扱う
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today は今日の暦日を返す
func Today() time.Time {
	return Day(time.Now())
}

// Nights は [from, to) の泊数を返す（fromがto以降なら0以下）
func Nights(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / (24 * time.Hour))
}

// Parse は "2006-01-02" 形式の文字列を暦日にパースする
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Format は暦日を "2006-01-02" 形式の文字列にする
func Format(t time.Time) string {
	return t.Format(Layout)
}
