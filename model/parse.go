package model

// UnknownDestination is shown when upstream gives a service no destination.
const UnknownDestination = "Unknown"

// ParseTrainServices converts the services on a station board into display
// rows, assigning platforms and deriving status. Order is preserved.
func ParseTrainServices(board *StationBoard, rules PlatformRules) []Service {
	if board == nil || len(board.TrainServices) == 0 {
		return []Service{}
	}

	services := make([]Service, 0, len(board.TrainServices))

	for _, ts := range board.TrainServices {
		destination := UnknownDestination
		if len(ts.Destination) > 0 && ts.Destination[0].LocationName != "" {
			destination = ts.Destination[0].LocationName
		}

		status, statusClass := DeriveStatus(ts.Std, ts.Etd, ts.IsCancelled)

		services = append(services, Service{
			Std:          ts.Std,
			Etd:          ts.Etd,
			Platform:     rules.Assign(ts.Platform, destination),
			Destination:  destination,
			Operator:     ts.Operator,
			IsCancelled:  ts.IsCancelled,
			CancelReason: ts.CancelReason,
			DelayReason:  ts.DelayReason,
			Status:       status,
			StatusClass:  statusClass,
		})
	}

	return services
}
