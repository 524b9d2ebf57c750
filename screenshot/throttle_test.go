package screenshot

import (
	"testing"
	"time"
)

func TestIntervalThrottle_Allow(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	it := NewIntervalThrottle(30 * time.Second)
	it.now = func() time.Time { return now }

	cases := []struct {
		offset time.Duration
		want   bool
	}{
		{0, true},
		{10 * time.Second, false},
		{29 * time.Second, false},
		{30 * time.Second, true},
		{45 * time.Second, false},
		{61 * time.Second, true},
	}

	start := now
	for _, c := range cases {
		now = start.Add(c.offset)

		got, err := it.Allow()
		if err != nil {
			t.Fatal(err)
		}

		if got != c.want {
			t.Errorf("at +%v: got %t, want %t", c.offset, got, c.want)
		}
	}
}
