package model

import (
	"sort"
	"time"
)

// DefaultMaxServicesPerPlatform is the number of rows a platform panel shows.
const DefaultMaxServicesPerPlatform = 5

// sortWindow is how far from now a scheduled time may lie and still be read
// as today. Late-running services keep their place even hours after their
// scheduled time, while times past midnight still sort last.
const sortWindow = 12 * time.Hour

const (
	Platform1 = "1"
	Platform2 = "2"
)

// GroupByPlatform splits services into the two board platforms and the rest,
// sorts each group by scheduled departure and truncates the platform groups
// to limit. A limit below 1 disables truncation.
func GroupByPlatform(now time.Time, localLocation *time.Location, services []Service, limit int) (platform1, platform2, noPlatform []Service) {
	platform1 = []Service{}
	platform2 = []Service{}
	noPlatform = []Service{}

	for _, service := range services {
		switch service.Platform {
		case Platform1:
			platform1 = append(platform1, service)
		case Platform2:
			platform2 = append(platform2, service)
		default:
			noPlatform = append(noPlatform, service)
		}
	}

	for _, group := range [][]Service{platform1, platform2, noPlatform} {
		sort.Stable(byScheduledDeparture{
			services: group,
			now:      now,
			location: localLocation,
		})
	}

	if limit > 0 {
		if len(platform1) > limit {
			platform1 = platform1[:limit]
		}

		if len(platform2) > limit {
			platform2 = platform2[:limit]
		}
	}

	return platform1, platform2, noPlatform
}

type byScheduledDeparture struct {
	services []Service
	now      time.Time
	location *time.Location
}

func (a byScheduledDeparture) Len() int {
	return len(a.services)
}

func (a byScheduledDeparture) Swap(i, j int) {
	a.services[i], a.services[j] = a.services[j], a.services[i]
}

// Less orders by resolved departure time so that services after midnight sort
// after late-evening ones. If either time cannot be resolved it falls back to
// comparing the raw strings.
func (a byScheduledDeparture) Less(i, j int) bool {
	if a.location != nil {
		iTime, iErr := convertDepartureTimeWithin(a.now, a.location, a.services[i].Std, sortWindow)
		jTime, jErr := convertDepartureTimeWithin(a.now, a.location, a.services[j].Std, sortWindow)

		if iErr == nil && jErr == nil {
			return iTime.Before(jTime)
		}
	}

	return a.services[i].Std < a.services[j].Std
}
