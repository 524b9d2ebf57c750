package model

import (
	"reflect"
	"testing"
)

func TestParseTrainServices(t *testing.T) {
	t.Run("returns an empty list for a nil or empty board", func(t *testing.T) {
		if got := ParseTrainServices(nil, DefaultPlatformRules); len(got) != 0 {
			t.Errorf("got %d services, want 0", len(got))
		}

		if got := ParseTrainServices(&StationBoard{}, DefaultPlatformRules); got == nil || len(got) != 0 {
			t.Errorf("got %#v, want an empty non-nil list", got)
		}
	})

	t.Run("converts services in order", func(t *testing.T) {
		board := &StationBoard{
			LocationName: "Hassocks",
			Crs:          "HSK",
			TrainServices: []TrainService{
				{
					Std:         "12:05",
					Etd:         "12:10",
					Platform:    "2",
					Operator:    "Southern",
					DelayReason: "a points failure",
					Destination: []ServiceLocation{{LocationName: "Brighton", Crs: "BTN"}},
				},
				{
					Std:         "12:01",
					Etd:         "On time",
					Operator:    "Thameslink",
					Destination: []ServiceLocation{{LocationName: "London Victoria", Crs: "VIC"}},
				},
				{
					Std:          "12:20",
					Etd:          "Cancelled",
					Operator:     "Southern",
					IsCancelled:  true,
					CancelReason: "a shortage of train crew",
				},
			},
		}

		got := ParseTrainServices(board, DefaultPlatformRules)

		want := []Service{
			{
				Std:         "12:05",
				Etd:         "12:10",
				Platform:    "2",
				Destination: "Brighton",
				Operator:    "Southern",
				DelayReason: "a points failure",
				Status:      "12:10",
				StatusClass: "delayed",
			},
			{
				Std:         "12:01",
				Etd:         "On time",
				Platform:    "1",
				Destination: "London Victoria",
				Operator:    "Thameslink",
				Status:      "On time",
				StatusClass: "on-time",
			},
			{
				Std:          "12:20",
				Etd:          "Cancelled",
				Platform:     "",
				Destination:  "Unknown",
				Operator:     "Southern",
				IsCancelled:  true,
				CancelReason: "a shortage of train crew",
				Status:       "Cancelled",
				StatusClass:  "cancelled",
			},
		}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("got:\n%#v\nwant:\n%#v", got, want)
		}
	})
}
