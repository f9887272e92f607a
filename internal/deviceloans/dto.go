package deviceloans

import "time"

// 貸出登録・置換リクエスト
// 日付は RFC3339 形式の文字列を想定
type UpsertLoanRequest struct {
	ID         string  `json:"id" binding:"required"`
	DeviceID   string  `json:"deviceId" binding:"required"`
	BorrowerID string  `json:"borrowerId" binding:"required"`
	LoanAmount float64 `json:"loanAmount" binding:"required"`
	StartDate  string  `json:"startDate" binding:"required"`
	DueDate    string  `json:"dueDate" binding:"required"`
	// 省略時は active
	Status string `json:"status,omitempty"`
	// 省略時は現在時刻
	CreatedAt string `json:"createdAt,omitempty"`
}

// 貸出レスポンス
type LoanResponse struct {
	ID           string    `json:"id"`
	DeviceID     string    `json:"deviceId"`
	BorrowerID   string    `json:"borrowerId"`
	LoanAmount   float64   `json:"loanAmount"`
	StartDate    time.Time `json:"startDate"`
	DueDate      time.Time `json:"dueDate"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	DurationDays int       `json:"durationDays"`
}

// 一覧取得の検索条件
type ListFilter struct {
	Status      *Status
	BorrowerID  string
	DeviceID    string
	OverdueOnly bool
	SortBy      string // "due_date" | "start_date" | ""
	Order       string // "asc" | "desc"
}

func buildLoanResponse(l *DeviceLoan) LoanResponse {
	return LoanResponse{
		ID:           l.ID,
		DeviceID:     l.DeviceID,
		BorrowerID:   l.BorrowerID,
		LoanAmount:   l.LoanAmount,
		StartDate:    l.StartDate,
		DueDate:      l.DueDate,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
		DurationDays: DurationDays(*l),
	}
}
