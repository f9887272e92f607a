package deviceloans

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Status は貸出レコードの状態
type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
)

// Valid returns true when the status is a recognized member.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	default:
		return false
	}
}

const (
	MinLoanAmount = 1
	MaxLoanAmount = 10000
)

// DeviceLoan は1件の貸出レコード。構築後は変更しない（更新は新しい
// レコードを作って upsert で置き換える）。
type DeviceLoan struct {
	ID         string
	DeviceID   string
	BorrowerID string
	LoanAmount float64
	StartDate  time.Time
	DueDate    time.Time
	Status     Status
	CreatedAt  time.Time
}

// Validate checks every invariant and returns all violations in field order.
// A nil/empty result means the inputs describe a valid loan. Pure function,
// never panics.
func Validate(id, deviceID, borrowerID string, loanAmount float64, startDate, dueDate time.Time, status Status, createdAt time.Time) []string {
	var violations []string

	if strings.TrimSpace(id) == "" {
		violations = append(violations, "id must be a non-empty string")
	}
	if strings.TrimSpace(deviceID) == "" {
		violations = append(violations, "deviceId must be a non-empty string")
	}
	if strings.TrimSpace(borrowerID) == "" {
		violations = append(violations, "borrowerId must be a non-empty string")
	}
	if math.IsNaN(loanAmount) || math.IsInf(loanAmount, 0) ||
		loanAmount < MinLoanAmount || loanAmount > MaxLoanAmount {
		violations = append(violations,
			fmt.Sprintf("loanAmount must be a number between %d and %d", MinLoanAmount, MaxLoanAmount))
	}
	if startDate.IsZero() {
		violations = append(violations, "startDate must be a valid date")
	}
	if dueDate.IsZero() {
		violations = append(violations, "dueDate must be a valid date")
	}
	if !startDate.IsZero() && !dueDate.IsZero() && !dueDate.After(startDate) {
		violations = append(violations, "dueDate must be after startDate")
	}
	if !status.Valid() {
		violations = append(violations, "status must be one of: active, returned, overdue")
	}
	if createdAt.IsZero() {
		violations = append(violations, "createdAt must be a valid date")
	}

	return violations
}

// New constructs a DeviceLoan or fails with a *ValidationError carrying every
// violated rule. Construction is all-or-nothing; a loan that fails validation
// is never materialized.
func New(id, deviceID, borrowerID string, loanAmount float64, startDate, dueDate time.Time, status Status, createdAt time.Time) (*DeviceLoan, error) {
	if violations := Validate(id, deviceID, borrowerID, loanAmount, startDate, dueDate, status, createdAt); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return &DeviceLoan{
		ID:         id,
		DeviceID:   deviceID,
		BorrowerID: borrowerID,
		LoanAmount: loanAmount,
		StartDate:  startDate,
		DueDate:    dueDate,
		Status:     status,
		CreatedAt:  createdAt,
	}, nil
}
