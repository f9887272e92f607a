package deviceloans

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"device-loans-backend/internal/platform/cosmos"
)

// エラーコード（レスポンス封筒の error.code にそのまま載る）
const (
	CodeNotFound         = "NotFound"
	CodeInvalidArgument  = "InvalidArgument"
	CodeValidationFailed = "ValidationFailed"
	CodeConflict         = "Conflict"
	CodeMissingConfig    = "MissingConfig"
	CodeInternal         = "InternalServerError"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func NewInvalidArgumentError(msg string) error {
	return &DomainError{Code: CodeInvalidArgument, Message: msg}
}

func NewConflictError(msg string) error {
	return &DomainError{Code: CodeConflict, Message: msg}
}

// ValidationError は構築時に破られた全ルールをまとめて持つ
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid device loan: " + strings.Join(e.Violations, "; ")
}

// ToHTTPStatus maps an error to a response status. The mapping switches on
// error types and codes, never on message contents.
func ToHTTPStatus(err error) int {
	var cfgErr *cosmos.ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest
	}
	var domErr *DomainError
	if errors.As(err, &domErr) {
		switch domErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeInvalidArgument, CodeValidationFailed, CodeMissingConfig:
			return http.StatusBadRequest
		case CodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
