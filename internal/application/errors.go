package application

import "errors"

// アプリケーション層のエラー定義
var (
	// ErrRoomNotAvailable は指定期間に客室を予約できないことを表す
	ErrRoomNotAvailable = errors.New("指定された期間はこの客室を予約できません")

	// ErrInvalidReportPeriod は集計対象の年月が不正なことを表す
	ErrInvalidReportPeriod = errors.New("集計対象の年月が不正です")
)
