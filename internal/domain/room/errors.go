package room

import "errors"

// Room ドメインのエラー定義
var (
	ErrRoomNotFound     = errors.New("客室が見つかりません")
	ErrRoomIDRequired   = errors.New("客室IDは必須です")
	ErrInvalidCategory  = errors.New("客室カテゴリが不正です")
	ErrInvalidCapacity  = errors.New("定員は1以上である必要があります")
	ErrInvalidBasePrice = errors.New("基本料金は0以上である必要があります")
)
