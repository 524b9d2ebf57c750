package rail_client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/pkg/errors"
	resty "gopkg.in/resty.v1"
)

// DefaultTimeout applies when RAIL_API_TIMEOUT is not set.
const DefaultTimeout = 10 * time.Second

// UserAgent is sent with every request; the upstream gateway rejects some
// library defaults.
const UserAgent = "curl/7.64.1"

// RailClient configuration options for requesting a departure board from the
// rail data REST API
type RailClient struct {
	Client *resty.Client
	Logger *dlog.Logger
	URL    string
	APIKey string
}

// RailClientInterface is a source of station boards. The returned int is the
// HTTP status to report for the fetch.
type RailClientInterface interface {
	Departures(ctx context.Context) (*model.StationBoard, int, error)
}

// NewRailClient returns a client for url authenticating with apiKey.
func NewRailClient(url string, apiKey string, timeout time.Duration, logger *dlog.Logger) *RailClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("x-apikey", apiKey).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json")

	return &RailClient{
		Client: client,
		Logger: logger,
		URL:    url,
		APIKey: apiKey,
	}
}

// Departures requests the station board and returns it with the HTTP status
// code to report downstream.
func (r *RailClient) Departures(ctx context.Context) (*model.StationBoard, int, error) {
	r.Logger.Debug("Rail API Departures")

	resp, err := r.Client.R().SetContext(ctx).Get(r.URL)
	if err != nil {
		return nil, http.StatusGatewayTimeout, errors.Wrap(err, "cannot make rail API request")
	}

	if err := r.checkResponseStatus(resp); err != nil {
		var statusCode int
		if resp.StatusCode() >= http.StatusInternalServerError {
			statusCode = http.StatusBadGateway
		} else {
			statusCode = resp.StatusCode()
		}
		return nil, statusCode, errors.Wrap(err, "cannot make rail API request")
	}

	board, err := r.createStationBoard(resp.Body())
	if err != nil {
		return nil, http.StatusInternalServerError, errors.Wrap(err, "cannot unmarshal rail API response")
	}

	return board, http.StatusOK, nil
}

func (r *RailClient) checkResponseStatus(resp *resty.Response) error {
	r.Logger.Debugf("checkResponseStatus: %d", resp.StatusCode())

	switch true {
	case resp.StatusCode() >= http.StatusInternalServerError:
		return errors.Errorf("rail API is unavailable (%s)", resp.Status())
	case resp.StatusCode() >= http.StatusBadRequest:
		return errors.Errorf("bad request to rail API (%s)", resp.Status())
	default:
		return nil
	}
}

func (r *RailClient) createStationBoard(body []byte) (*model.StationBoard, error) {
	r.Logger.Debug("createStationBoard")
	board := model.StationBoard{}
	if err := json.Unmarshal(body, &board); err != nil {
		return nil, err
	}
	return &board, nil
}
