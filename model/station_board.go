package model

import "time"

// StationBoard is a departure board for a single station as returned by the
// Live Departure Boards REST service. The SOAP service is converted into the
// same shape by the nationalrail package so that both feed one parser.
type StationBoard struct {
	GeneratedAt       time.Time      `json:"generatedAt,omitempty"`
	LocationName      string         `json:"locationName,omitempty"`
	Crs               string         `json:"crs,omitempty"`
	PlatformAvailable bool           `json:"platformAvailable,omitempty"`
	TrainServices     []TrainService `json:"trainServices,omitempty"`
	NrccMessages      []NrccMessage  `json:"nrccMessages,omitempty"`
}

// TrainService is one departure on a StationBoard. Std and Etd are local
// "HH:MM" strings; Etd may also be "On time", "Delayed" or "Cancelled".
type TrainService struct {
	Std          string            `json:"std,omitempty"`
	Etd          string            `json:"etd,omitempty"`
	Platform     string            `json:"platform,omitempty"`
	Operator     string            `json:"operator,omitempty"`
	OperatorCode string            `json:"operatorCode,omitempty"`
	IsCancelled  bool              `json:"isCancelled,omitempty"`
	CancelReason string            `json:"cancelReason,omitempty"`
	DelayReason  string            `json:"delayReason,omitempty"`
	ServiceID    string            `json:"serviceID,omitempty"`
	Destination  []ServiceLocation `json:"destination,omitempty"`
}

type ServiceLocation struct {
	LocationName string `json:"locationName,omitempty"`
	Crs          string `json:"crs,omitempty"`
	Via          string `json:"via,omitempty"`
}

type NrccMessage struct {
	Value string `json:"Value,omitempty"`
}
