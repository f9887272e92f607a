package devices

import "time"

// Device は貸出対象機器のカタログエントリ。貸出レコードと違い
// バリデーションは持たない簡易エンティティ。
type Device struct {
	ID        string
	Name      string
	Category  string
	Condition string
	Available bool
	CreatedAt time.Time
}
