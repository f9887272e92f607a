package deviceloans

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	jsoniter "github.com/json-iterator/go"

	"device-loans-backend/internal/platform/cosmos"
)

var docJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// isoLayout is the document encoding for timestamps: UTC, zero-padded,
// millisecond precision. Fixed-width fields make lexicographic order equal
// chronological order, which the overdue query's string comparison relies on.
const isoLayout = "2006-01-02T15:04:05.000Z"

// 1コンテナ・1ドキュメント=1貸出。パーティションキーは /id。
const (
	queryAll        = "SELECT * FROM c"
	queryByStatus   = "SELECT * FROM c WHERE c.status = @status"
	queryByBorrower = "SELECT * FROM c WHERE c.borrowerId = @borrowerId"
	queryByDevice   = "SELECT * FROM c WHERE c.deviceId = @deviceId"
	queryOverdue    = `SELECT * FROM c WHERE c.status = "active" AND c.dueDate < @ref`
)

// loanDoc is the on-disk shape of a loan. It differs from the domain record
// only in date encoding.
type loanDoc struct {
	ID         string  `json:"id"`
	DeviceID   string  `json:"deviceId"`
	BorrowerID string  `json:"borrowerId"`
	LoanAmount float64 `json:"loanAmount"`
	StartDate  string  `json:"startDate"`
	DueDate    string  `json:"dueDate"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

func toDoc(l *DeviceLoan) loanDoc {
	return loanDoc{
		ID:         l.ID,
		DeviceID:   l.DeviceID,
		BorrowerID: l.BorrowerID,
		LoanAmount: l.LoanAmount,
		StartDate:  l.StartDate.UTC().Format(isoLayout),
		DueDate:    l.DueDate.UTC().Format(isoLayout),
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt.UTC().Format(isoLayout),
	}
}

func parseDocTime(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func fromDoc(d loanDoc) (DeviceLoan, error) {
	start, err := parseDocTime(d.StartDate)
	if err != nil {
		return DeviceLoan{}, fmt.Errorf("loan %s: bad startDate %q: %w", d.ID, d.StartDate, err)
	}
	due, err := parseDocTime(d.DueDate)
	if err != nil {
		return DeviceLoan{}, fmt.Errorf("loan %s: bad dueDate %q: %w", d.ID, d.DueDate, err)
	}
	created, err := parseDocTime(d.CreatedAt)
	if err != nil {
		return DeviceLoan{}, fmt.Errorf("loan %s: bad createdAt %q: %w", d.ID, d.CreatedAt, err)
	}
	return DeviceLoan{
		ID:         d.ID,
		DeviceID:   d.DeviceID,
		BorrowerID: d.BorrowerID,
		LoanAmount: d.LoanAmount,
		StartDate:  start,
		DueDate:    due,
		Status:     Status(d.Status),
		CreatedAt:  created,
	}, nil
}

// Store persists loans in a Cosmos container. The container client is
// resolved through the provider on every call so that a missing
// configuration surfaces as a typed error instead of a nil dereference.
type Store struct {
	provider *cosmos.Provider
}

var _ Repository = (*Store)(nil)

func NewStore(provider *cosmos.Provider) *Store {
	return &Store{provider: provider}
}

func (s *Store) FindByID(ctx context.Context, id string) (*DeviceLoan, error) {
	container, err := s.provider.LoansContainer()
	if err != nil {
		return nil, err
	}
	resp, err := container.ReadItem(ctx, azcosmos.NewPartitionKeyString(id), id, nil)
	if err != nil {
		if cosmos.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc loanDoc
	if err := docJSON.Unmarshal(resp.Value, &doc); err != nil {
		return nil, err
	}
	loan, err := fromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *Store) FindAll(ctx context.Context) ([]DeviceLoan, error) {
	return s.query(ctx, queryAll, nil)
}

func (s *Store) Save(ctx context.Context, loan *DeviceLoan) error {
	container, err := s.provider.LoansContainer()
	if err != nil {
		return err
	}
	body, err := docJSON.Marshal(toDoc(loan))
	if err != nil {
		return err
	}
	_, err = container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(loan.ID), body, nil)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	container, err := s.provider.LoansContainer()
	if err != nil {
		return false, err
	}
	_, err = container.DeleteItem(ctx, azcosmos.NewPartitionKeyString(id), id, nil)
	if err != nil {
		if cosmos.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	loan, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return loan != nil, nil
}

func (s *Store) FindActive(ctx context.Context) ([]DeviceLoan, error) {
	return s.query(ctx, queryByStatus, []azcosmos.QueryParameter{
		{Name: "@status", Value: string(StatusActive)},
	})
}

func (s *Store) FindOverdue(ctx context.Context, ref time.Time) ([]DeviceLoan, error) {
	return s.query(ctx, queryOverdue, []azcosmos.QueryParameter{
		{Name: "@ref", Value: ref.UTC().Format(isoLayout)},
	})
}

func (s *Store) FindByBorrowerID(ctx context.Context, borrowerID string) ([]DeviceLoan, error) {
	return s.query(ctx, queryByBorrower, []azcosmos.QueryParameter{
		{Name: "@borrowerId", Value: borrowerID},
	})
}

func (s *Store) FindByDeviceID(ctx context.Context, deviceID string) ([]DeviceLoan, error) {
	return s.query(ctx, queryByDevice, []azcosmos.QueryParameter{
		{Name: "@deviceId", Value: deviceID},
	})
}

// query runs a cross-partition parameterized query and maps every page.
func (s *Store) query(ctx context.Context, q string, params []azcosmos.QueryParameter) ([]DeviceLoan, error) {
	container, err := s.provider.LoansContainer()
	if err != nil {
		return nil, err
	}

	// 空の PartitionKey でクロスパーティション実行
	pager := container.NewQueryItemsPager(q, azcosmos.PartitionKey{}, &azcosmos.QueryOptions{
		QueryParameters: params,
	})

	var loans []DeviceLoan
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			var doc loanDoc
			if err := docJSON.Unmarshal(item, &doc); err != nil {
				return nil, err
			}
			loan, err := fromDoc(doc)
			if err != nil {
				return nil, err
			}
			loans = append(loans, loan)
		}
	}
	return loans, nil
}
