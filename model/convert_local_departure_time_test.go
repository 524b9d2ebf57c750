package model

import (
	"testing"
	"time"
)

func TestConvertDepartureTime(t *testing.T) {
	localLocation, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()

	t.Run("future departure on current day", func(t *testing.T) {
		then := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, localLocation)

		got, err := ConvertDepartureTime(then, localLocation, "13:20")
		if err != nil {
			t.Fatal(err)
		}

		want := then.Add(time.Hour + time.Minute*20)

		if !got.Equal(want) {
			t.Errorf("got %s, want %s", got.Format(time.RFC3339), want.Format(time.RFC3339))
		}
	})

	t.Run("future departure on following day", func(t *testing.T) {
		then := time.Date(now.Year(), now.Month(), now.Day(), 23, 30, 0, 0, localLocation)

		got, err := ConvertDepartureTime(then, localLocation, "00:20")
		if err != nil {
			t.Fatal(err)
		}

		want := then.Add(time.Minute * 50)

		if !got.Equal(want) {
			t.Errorf("got %s, want %s", got.Format(time.RFC3339), want.Format(time.RFC3339))
		}
	})

	t.Run("late departure on previous day", func(t *testing.T) {
		then := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 40, 0, 0, localLocation)

		got, err := ConvertDepartureTime(then, localLocation, "23:40")
		if err != nil {
			t.Fatal(err)
		}

		want := then.Add(time.Hour * -1)

		if !got.Equal(want) {
			t.Errorf("got %s, want %s", got.Format(time.RFC3339), want.Format(time.RFC3339))
		}
	})

	t.Run("rejects times that are not HH:MM", func(t *testing.T) {
		for _, localTime := range []string{"", "On time", "9:05", "25:00", "12:61"} {
			if _, err := ConvertDepartureTime(now, localLocation, localTime); err == nil {
				t.Errorf("expected an error for `%s`", localTime)
			}
		}
	})

	t.Run("requires a location", func(t *testing.T) {
		if _, err := ConvertDepartureTime(now, nil, "12:00"); err == nil {
			t.Error("expected an error for a nil location")
		}
	})
}
