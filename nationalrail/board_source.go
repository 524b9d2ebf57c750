package nationalrail

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/pkg/errors"
)

// DefaultNumRows is the number of services requested per board.
const DefaultNumRows = 20

// BoardSource requests a station's departure board over SOAP and converts it
// into the model shared with the REST client.
type BoardSource struct {
	Logger  *dlog.Logger
	Service LDBServiceSoap
	Crs     string
	NumRows uint16
	Timeout time.Duration
}

// Departures requests the board and returns it with the HTTP status code to
// report downstream.
func (bs *BoardSource) Departures(ctx context.Context) (*model.StationBoard, int, error) {
	bs.Logger.Debugf("LDB Departures for %s", bs.Crs)

	if bs.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bs.Timeout)
		defer cancel()
	}

	crs := CRSType(bs.Crs)
	numRows := bs.NumRows
	if numRows == 0 {
		numRows = DefaultNumRows
	}

	resp, err := bs.Service.GetDepartureBoardContext(ctx, &GetBoardRequestParams{
		NumRows: numRows,
		Crs:     &crs,
	})
	if err != nil {
		statusCode := http.StatusBadGateway
		if ctx.Err() == context.DeadlineExceeded {
			statusCode = http.StatusGatewayTimeout
		}
		return nil, statusCode, errors.Wrapf(err, "cannot get departure board for %s", bs.Crs)
	}

	if resp == nil || resp.GetStationBoardResult == nil {
		return nil, http.StatusBadGateway, errors.Errorf("empty departure board for %s", bs.Crs)
	}

	return ConvertStationBoard(resp.GetStationBoardResult), http.StatusOK, nil
}

// ConvertStationBoard maps a SOAP board onto model.StationBoard. Platforms
// are dropped when the board reports them unavailable, and a dividing
// service's destinations are combined into one.
func ConvertStationBoard(sb *StationBoard) *model.StationBoard {
	board := &model.StationBoard{
		GeneratedAt:       sb.GeneratedAt,
		LocationName:      value(sb.LocationName),
		Crs:               value(sb.Crs),
		PlatformAvailable: sb.PlatformAvailable,
	}

	if sb.NrccMessages != nil {
		for _, message := range sb.NrccMessages.Message {
			if message != nil {
				board.NrccMessages = append(board.NrccMessages, model.NrccMessage{Value: message.Value})
			}
		}
	}

	if sb.TrainServices == nil {
		return board
	}

	for _, service := range sb.TrainServices.Service {
		if service == nil {
			continue
		}

		ts := model.TrainService{
			Std:          value(service.Std),
			Etd:          value(service.Etd),
			Operator:     value(service.Operator),
			OperatorCode: value(service.OperatorCode),
			IsCancelled:  service.IsCancelled,
			CancelReason: service.CancelReason,
			DelayReason:  service.DelayReason,
			ServiceID:    value(service.ServiceID),
		}

		if sb.PlatformAvailable {
			ts.Platform = value(service.Platform)
		}

		if destination, ok := convertDestination(service.Destination); ok {
			ts.Destination = []model.ServiceLocation{destination}
		}

		board.TrainServices = append(board.TrainServices, ts)
	}

	return board
}

func convertDestination(locations *ArrayOfServiceLocations) (model.ServiceLocation, bool) {
	if locations == nil {
		return model.ServiceLocation{}, false
	}

	var names []string
	var crs string

	for _, location := range locations.Location {
		if location == nil || location.LocationName == nil {
			continue
		}

		name := string(*location.LocationName)
		if location.Via != "" {
			name += " " + location.Via
		}

		if crs == "" {
			crs = value(location.Crs)
		}

		names = append(names, name)
	}

	if len(names) == 0 {
		return model.ServiceLocation{}, false
	}

	return model.ServiceLocation{
		LocationName: strings.Join(names, " + "),
		Crs:          crs,
	}, true
}

func value[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
