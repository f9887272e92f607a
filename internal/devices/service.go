package devices

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]DeviceResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DeviceResponse, 0, len(items))
	for i := range items {
		out = append(out, buildDeviceResponse(&items[i]))
	}
	return out, nil
}
