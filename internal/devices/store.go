package devices

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	jsoniter "github.com/json-iterator/go"

	"device-loans-backend/internal/platform/cosmos"
)

var docJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const isoLayout = "2006-01-02T15:04:05.000Z"

// Repository is the catalogue persistence capability.
type Repository interface {
	FindAll(ctx context.Context) ([]Device, error)
	Save(ctx context.Context, d *Device) error
}

type deviceDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Available bool   `json:"available"`
	CreatedAt string `json:"createdAt"`
}

// Store persists the catalogue in its own Cosmos container, partitioned by
// /id like the loans container.
type Store struct {
	provider *cosmos.Provider
}

var _ Repository = (*Store)(nil)

func NewStore(provider *cosmos.Provider) *Store {
	return &Store{provider: provider}
}

func (s *Store) FindAll(ctx context.Context) ([]Device, error) {
	container, err := s.provider.DevicesContainer()
	if err != nil {
		return nil, err
	}

	pager := container.NewQueryItemsPager("SELECT * FROM c", azcosmos.PartitionKey{}, nil)

	var out []Device
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			var doc deviceDoc
			if err := docJSON.Unmarshal(item, &doc); err != nil {
				return nil, err
			}
			created, err := parseDocTime(doc.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("device %s: bad createdAt %q: %w", doc.ID, doc.CreatedAt, err)
			}
			out = append(out, Device{
				ID:        doc.ID,
				Name:      doc.Name,
				Category:  doc.Category,
				Condition: doc.Condition,
				Available: doc.Available,
				CreatedAt: created,
			})
		}
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, d *Device) error {
	container, err := s.provider.DevicesContainer()
	if err != nil {
		return err
	}
	body, err := docJSON.Marshal(deviceDoc{
		ID:        d.ID,
		Name:      d.Name,
		Category:  d.Category,
		Condition: d.Condition,
		Available: d.Available,
		CreatedAt: d.CreatedAt.UTC().Format(isoLayout),
	})
	if err != nil {
		return err
	}
	_, err = container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(d.ID), body, nil)
	return err
}

func parseDocTime(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
