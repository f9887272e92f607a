package deviceloans

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Repository used by tests and by the seed tool
// in dry-run mode. Insertion order is preserved for FindAll.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	loans map[string]DeviceLoan
}

var _ Repository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{loans: make(map[string]DeviceLoan)}
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*DeviceLoan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loan, ok := m.loans[id]
	if !ok {
		return nil, nil
	}
	return &loan, nil
}

func (m *MemoryStore) FindAll(_ context.Context) ([]DeviceLoan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DeviceLoan, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.loans[id])
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, loan *DeviceLoan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loans[loan.ID]; !ok {
		m.order = append(m.order, loan.ID)
	}
	m.loans[loan.ID] = *loan
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loans[id]; !ok {
		return false, nil
	}
	delete(m.loans, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.loans[id]
	return ok, nil
}

func (m *MemoryStore) FindActive(ctx context.Context) ([]DeviceLoan, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterActive(all), nil
}

func (m *MemoryStore) FindOverdue(ctx context.Context, ref time.Time) ([]DeviceLoan, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterOverdue(all, ref), nil
}

func (m *MemoryStore) FindByBorrowerID(ctx context.Context, borrowerID string) ([]DeviceLoan, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceLoan, 0, len(all))
	for _, l := range all {
		if l.BorrowerID == borrowerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByDeviceID(ctx context.Context, deviceID string) ([]DeviceLoan, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceLoan, 0, len(all))
	for _, l := range all {
		if l.DeviceID == deviceID {
			out = append(out, l)
		}
	}
	return out, nil
}
