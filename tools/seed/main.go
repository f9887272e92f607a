// Seeds the configured Cosmos containers with a small device catalogue and
// a handful of loans. Intended for dev environments only.
package main

import (
	"context"
	"crypto/rand"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"device-loans-backend/internal/deviceloans"
	"device-loans-backend/internal/devices"
	"device-loans-backend/internal/platform/cosmos"
)

func newID(entropy *ulid.MonotonicEntropy) string {
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider := cosmos.NewProvider()
	deviceStore := devices.NewStore(provider)
	loanStore := deviceloans.NewStore(provider)

	entropy := ulid.Monotonic(rand.Reader, 0)
	now := time.Now().UTC()

	catalogue := []devices.Device{
		{ID: newID(entropy), Name: "ThinkPad T14", Category: "laptop", Condition: "good", Available: true, CreatedAt: now},
		{ID: newID(entropy), Name: "iPad Air", Category: "tablet", Condition: "fair", Available: true, CreatedAt: now},
		{ID: newID(entropy), Name: "Canon EOS R10", Category: "camera", Condition: "good", Available: false, CreatedAt: now},
	}
	for i := range catalogue {
		if err := deviceStore.Save(ctx, &catalogue[i]); err != nil {
			log.Fatalf("[ERROR] seed device %s: %v", catalogue[i].ID, err)
		}
		log.Printf("[INFO] seeded device %s (%s)", catalogue[i].ID, catalogue[i].Name)
	}

	seeds := []struct {
		device   string
		borrower string
		amount   float64
		start    time.Time
		due      time.Time
		status   deviceloans.Status
	}{
		{catalogue[0].ID, "student-1001", 1200, now.AddDate(0, 0, -10), now.AddDate(0, 0, 4), deviceloans.StatusActive},
		{catalogue[1].ID, "student-1002", 450, now.AddDate(0, 0, -30), now.AddDate(0, 0, -2), deviceloans.StatusActive},
		{catalogue[2].ID, "student-1003", 900, now.AddDate(0, 0, -60), now.AddDate(0, 0, -40), deviceloans.StatusReturned},
	}
	for _, sd := range seeds {
		loan, err := deviceloans.New(newID(entropy), sd.device, sd.borrower, sd.amount, sd.start, sd.due, sd.status, now)
		if err != nil {
			log.Fatalf("[ERROR] seed loan: %v", err)
		}
		if err := loanStore.Save(ctx, loan); err != nil {
			log.Fatalf("[ERROR] seed loan %s: %v", loan.ID, err)
		}
		log.Printf("[INFO] seeded loan %s (%s -> %s)", loan.ID, loan.DeviceID, loan.BorrowerID)
	}

	log.Println("[INFO] done")
}
