package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderNumberPrefix = "LC"

// OrderNumberFunc produces a candidate order number for the given instant.
type OrderNumberFunc func(now time.Time) string

// NewOrderNumber returns LC + YYYYMMDDHHmm (UTC) + 6 random uppercase hex
// characters, e.g. LC202405142301A1B2C3.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return orderNumberPrefix + now.UTC().Format("200601021504") + suffix
}
