package model

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var localTimeRegexp = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// ConvertDepartureTime resolves a local "HH:MM" departure time from a
// departure board to an absolute time on the day nearest to now.
func ConvertDepartureTime(now time.Time, localLocation *time.Location, localTime string) (time.Time, error) {
	// Boards cover roughly two hours either side of now, so a time more than
	// two hours away on today's date belongs to the adjacent day.
	return convertDepartureTimeWithin(now, localLocation, localTime, 2*time.Hour)
}

// convertDepartureTimeWithin resolves localTime to today unless it lies more
// than window behind now (tomorrow) or ahead of now (yesterday).
func convertDepartureTimeWithin(now time.Time, localLocation *time.Location, localTime string, window time.Duration) (time.Time, error) {
	if localLocation == nil {
		return time.Time{}, errors.New("location must be set")
	}

	m := localTimeRegexp.FindStringSubmatch(localTime)
	if m == nil {
		return time.Time{}, errors.Errorf("departure time `%s` is not in HH:MM format", localTime)
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, errors.Wrap(err, "could not parse hours from departure time")
	}

	mins, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, errors.Wrap(err, "could not parse mins from departure time")
	}

	if hours > 23 || mins > 59 {
		return time.Time{}, errors.Errorf("departure time `%s` is out of range", localTime)
	}

	now = now.In(localLocation)

	departingToday := time.Date(now.Year(), now.Month(), now.Day(), hours, mins, 0, 0, localLocation)

	if now.Sub(departingToday) > window {
		// Built with time.Date rather than Add to survive DST changes.
		return time.Date(now.Year(), now.Month(), now.Day()+1, hours, mins, 0, 0, localLocation), nil
	}

	if departingToday.Sub(now) > window {
		return time.Date(now.Year(), now.Month(), now.Day()-1, hours, mins, 0, 0, localLocation), nil
	}

	return departingToday, nil
}
