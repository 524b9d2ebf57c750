package model

// Status text and the matching style selector token for each state a
// service can be shown in.
const (
	OnTime    = "On time"
	Delayed   = "Delayed"
	Cancelled = "Cancelled"

	StatusClassOnTime    = "on-time"
	StatusClassDelayed   = "delayed"
	StatusClassCancelled = "cancelled"
)

// DeriveStatus returns the display status and status class for a service.
// A cancellation wins over any estimate; an estimate that is neither
// "On time" nor the scheduled time is shown verbatim as a delay, including a
// missing estimate, which shows an empty status.
func DeriveStatus(std, etd string, isCancelled bool) (status string, statusClass string) {
	switch {
	case isCancelled:
		return Cancelled, StatusClassCancelled
	case etd == Delayed:
		return Delayed, StatusClassDelayed
	case etd != OnTime && etd != std:
		return etd, StatusClassDelayed
	default:
		return OnTime, StatusClassOnTime
	}
}
