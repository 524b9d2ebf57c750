package model

// DeparturePayload is the body of GET /api/departures. Platform 1 and 2 are
// the two panels of the board; NoPlatform holds services the station has not
// yet platformed and which no assignment rule matched.
type DeparturePayload struct {
	LastUpdated string    `json:"last_updated"`
	StationName string    `json:"station_name,omitempty"`
	Platform1   []Service `json:"platform_1"`
	Platform2   []Service `json:"platform_2"`
	NoPlatform  []Service `json:"no_platform"`
}

// Service is a single row on a platform panel.
type Service struct {
	Std          string `json:"std"`
	Etd          string `json:"etd"`
	Platform     string `json:"platform"`
	Destination  string `json:"destination"`
	Operator     string `json:"operator"`
	IsCancelled  bool   `json:"is_cancelled"`
	CancelReason string `json:"cancel_reason"`
	DelayReason  string `json:"delay_reason"`
	Status       string `json:"status"`
	StatusClass  string `json:"status_class"`
}

// HasEstimatedTime reports whether the estimated time of departure carries
// information beyond the scheduled time and should be displayed.
func (s Service) HasEstimatedTime() bool {
	return s.Etd != "" && s.Etd != s.Std && s.Etd != OnTime
}

// ErrorResponse is returned with a 500 status when upstream data is unavailable.
type ErrorResponse struct {
	Error string `json:"error"`
}
