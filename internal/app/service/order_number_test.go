package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2024, 5, 14, 23, 1, 30, 0, time.UTC)
	pattern := regexp.MustCompile(`^LC\d{12}[0-9A-F]{6}$`)

	const n = 100
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		number := NewOrderNumber(now.Add(time.Duration(i) * 100 * time.Millisecond))
		assert.Regexp(t, pattern, number)
		assert.Equal(t, "LC202405142301", number[:14])
		seen[number] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestNewOrderNumber_UsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	local := time.Date(2024, 5, 15, 4, 31, 0, 0, ist)

	assert.Equal(t, "LC202405142301", NewOrderNumber(local)[:14])
}
