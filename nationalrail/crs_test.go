package nationalrail

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidateCRS(t *testing.T) {
	t.Run("should accept three upper case letters", func(t *testing.T) {
		for _, code := range []string{"HSK", "BTN", "VIC"} {
			if err := ValidateCRS(code); err != nil {
				t.Errorf("%s: %s", code, err)
			}
		}
	})

	t.Run("should reject anything else", func(t *testing.T) {
		for _, code := range []string{"", "hsk", "HS", "HSKX", "H5K", " HSK"} {
			if err := ValidateCRS(code); err == nil {
				t.Errorf("expected an error for `%s`", code)
			}
		}
	})
}

func TestStationName(t *testing.T) {
	t.Run("should return the name for a known CRS code", func(t *testing.T) {
		cases := map[string]string{
			"HSK": "Hassocks",
			"BTN": "Brighton",
			"VIC": "London Victoria",
			"lit": "Littlehampton",
		}

		for crs, want := range cases {
			got, err := StationName(crs)
			if err != nil {
				t.Error(err)
				continue
			}

			if got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		}
	})

	t.Run("should return an error for an unknown CRS code", func(t *testing.T) {
		if _, err := StationName("XXX"); errors.Cause(err) != ErrUnknownStation {
			t.Errorf("got %v, want ErrUnknownStation", err)
		}
	})
}
