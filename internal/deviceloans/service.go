package deviceloans

import (
	"context"
	"time"
)

// Clock abstracts "now" so overdue checks are testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Service orchestrates the repository capability. No store-specific logic
// lives here; the repository decides how queries execute.
type Service struct {
	repo  Repository
	clock Clock
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}}
}

// NewServiceWithClock is used by tests to pin the reference time.
func NewServiceWithClock(repo Repository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Create validates and persists a new loan. Creating an id that already
// exists is a conflict; replacing goes through Replace.
func (s *Service) Create(ctx context.Context, req UpsertLoanRequest) (*LoanResponse, error) {
	loan, err := s.materialize(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, loan.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewConflictError("loan already exists: " + loan.ID)
	}

	if err := s.repo.Save(ctx, loan); err != nil {
		return nil, err
	}
	resp := buildLoanResponse(loan)
	return &resp, nil
}

// Replace upserts a full new record under the path id. The entity is
// immutable; any change is a fresh construction followed by an upsert.
func (s *Service) Replace(ctx context.Context, id string, req UpsertLoanRequest) (*LoanResponse, error) {
	if req.ID != "" && req.ID != id {
		return nil, NewInvalidArgumentError("body id does not match path id")
	}
	req.ID = id

	loan, err := s.materialize(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, loan); err != nil {
		return nil, err
	}
	resp := buildLoanResponse(loan)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*LoanResponse, error) {
	if id == "" {
		return nil, NewInvalidArgumentError("id is required")
	}
	loan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, NewNotFoundError("loan not found: " + id)
	}
	resp := buildLoanResponse(loan)
	return &resp, nil
}

// Delete reports whether a loan was actually removed. Repeating a delete is
// not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, NewInvalidArgumentError("id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, NewInvalidArgumentError("id is required")
	}
	return s.repo.Exists(ctx, id)
}

// List resolves the filter onto the specialized finders, then applies the
// pure in-memory sort helpers.
func (s *Service) List(ctx context.Context, f ListFilter) ([]LoanResponse, error) {
	var (
		loans []DeviceLoan
		err   error
	)

	switch {
	case f.OverdueOnly:
		loans, err = s.repo.FindOverdue(ctx, s.clock.Now())
	case f.BorrowerID != "":
		loans, err = s.repo.FindByBorrowerID(ctx, f.BorrowerID)
	case f.DeviceID != "":
		loans, err = s.repo.FindByDeviceID(ctx, f.DeviceID)
	case f.Status != nil && *f.Status == StatusActive:
		loans, err = s.repo.FindActive(ctx)
	default:
		loans, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	// ステータス絞り込みが専用ファインダで賄えなかった分はここで
	if f.Status != nil {
		filtered := make([]DeviceLoan, 0, len(loans))
		for _, l := range loans {
			if l.Status == *f.Status {
				filtered = append(filtered, l)
			}
		}
		loans = filtered
	}

	asc := f.Order != "desc"
	switch f.SortBy {
	case "due_date":
		loans = SortByDueDate(loans, asc)
	case "start_date":
		loans = SortByStartDate(loans, asc)
	}

	result := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		result = append(result, buildLoanResponse(&loans[i]))
	}
	return result, nil
}

// materialize parses the wire representation and runs it through the
// all-or-nothing factory.
func (s *Service) materialize(req UpsertLoanRequest) (*DeviceLoan, error) {
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, NewInvalidArgumentError("invalid startDate, expected RFC3339")
	}
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return nil, NewInvalidArgumentError("invalid dueDate, expected RFC3339")
	}

	status := Status(req.Status)
	if req.Status == "" {
		status = StatusActive
	}

	createdAt := s.clock.Now()
	if req.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, req.CreatedAt)
		if err != nil {
			return nil, NewInvalidArgumentError("invalid createdAt, expected RFC3339")
		}
	}

	return New(req.ID, req.DeviceID, req.BorrowerID, req.LoanAmount, startDate, dueDate, status, createdAt)
}
