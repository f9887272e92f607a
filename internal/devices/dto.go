package devices

import "time"

// デバイスレスポンス
type DeviceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Condition string    `json:"condition"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
}

func buildDeviceResponse(d *Device) DeviceResponse {
	return DeviceResponse{
		ID:        d.ID,
		Name:      d.Name,
		Category:  d.Category,
		Condition: d.Condition,
		Available: d.Available,
		CreatedAt: d.CreatedAt,
	}
}
