package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/TfGMEnterprise/departure-board/board"
	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/TfGMEnterprise/departure-board/nationalrail"
	rail_client "github.com/TfGMEnterprise/departure-board/rail-client"
	"github.com/TfGMEnterprise/departure-board/repository"
	"github.com/pkg/errors"
)

// UnableToFetchMessage is the error body returned when upstream data is
// unavailable.
const UnableToFetchMessage = "Unable to fetch data"

// DefaultStationName heads the board when neither upstream nor the CRS
// lookup names the station.
const DefaultStationName = "Hassocks"

const lastUpdatedLayout = "15:04:05"

type screenshotTrigger interface {
	TriggerIfDue(ctx context.Context) bool
}

type payloadPublisher interface {
	Publish(ctx context.Context, payload *model.DeparturePayload) error
}

type visibilityListener interface {
	VisibilityChanged(state board.VisibilityState)
}

// DeparturesAPI serves the departures payload, the board page and its latest
// screenshot.
type DeparturesAPI struct {
	Logger      *dlog.Logger
	Source      rail_client.RailClientInterface
	Rules       model.PlatformRules
	MaxServices int
	Crs         string
	Location    *time.Location
	Now         func() time.Time

	// Optional collaborators; nil disables the feature.
	Screenshots screenshotTrigger
	Publisher   payloadPublisher
	Images      repository.ImageStore
	Page        http.Handler
	Board       visibilityListener
}

// Departures fetches the upstream board and builds the payload.
func (api *DeparturesAPI) Departures(ctx context.Context) (*model.DeparturePayload, error) {
	api.Logger.Debug("Departures")

	stationBoard, statusCode, err := api.Source.Departures(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "upstream responded with status %d", statusCode)
	}

	now := api.now()

	services := model.ParseTrainServices(stationBoard, api.Rules)
	platform1, platform2, noPlatform := model.GroupByPlatform(now, api.Location, services, api.MaxServices)

	return &model.DeparturePayload{
		LastUpdated: now.In(api.Location).Format(lastUpdatedLayout),
		StationName: api.stationName(stationBoard),
		Platform1:   platform1,
		Platform2:   platform2,
		NoPlatform:  noPlatform,
	}, nil
}

func (api *DeparturesAPI) now() time.Time {
	if api.Now != nil {
		return api.Now()
	}
	return time.Now()
}

func (api *DeparturesAPI) stationName(stationBoard *model.StationBoard) string {
	if stationBoard != nil && stationBoard.LocationName != "" {
		return stationBoard.LocationName
	}

	if name, err := nationalrail.StationName(api.Crs); err == nil {
		return name
	}

	return DefaultStationName
}

// afterFetch runs the side effects of a successful fetch. Neither can fail
// the response.
func (api *DeparturesAPI) afterFetch(ctx context.Context, payload *model.DeparturePayload) {
	if api.Screenshots != nil {
		api.Screenshots.TriggerIfDue(ctx)
	}

	if api.Publisher != nil {
		if err := api.Publisher.Publish(ctx, payload); err != nil {
			api.Logger.Printf("cannot publish departures: %s", err)
		}
	}
}

// Routes returns the HTTP handler for every endpoint.
func (api *DeparturesAPI) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/departures", api.HandleDepartures)
	mux.HandleFunc("/image.png", api.HandleImage)
	mux.HandleFunc("/visibility", api.HandleVisibility)
	mux.HandleFunc("/", api.HandleIndex)
	return mux
}

func (api *DeparturesAPI) HandleDepartures(w http.ResponseWriter, r *http.Request) {
	api.Logger.Debug("HandleDepartures")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	payload, err := api.Departures(r.Context())
	if err != nil {
		api.Logger.Printf("Error fetching data: %s", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: UnableToFetchMessage})
		return
	}

	api.afterFetch(r.Context(), payload)

	writeJSON(w, http.StatusOK, payload)
}

func (api *DeparturesAPI) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || api.Page == nil {
		http.NotFound(w, r)
		return
	}

	api.Page.ServeHTTP(w, r)
}

func (api *DeparturesAPI) HandleImage(w http.ResponseWriter, r *http.Request) {
	api.Logger.Debug("HandleImage")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if api.Images == nil {
		http.NotFound(w, r)
		return
	}

	png, err := api.Images.Get(r.Context())
	if err == repository.ErrImageNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		api.Logger.Printf("cannot read screenshot: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(png); err != nil {
		api.Logger.Printf("cannot write screenshot: %s", err)
	}
}

// HandleVisibility accepts the display's visibility as a "state" form value
// or a plain text body.
func (api *DeparturesAPI) HandleVisibility(w http.ResponseWriter, r *http.Request) {
	api.Logger.Debug("HandleVisibility")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if api.Board == nil {
		http.NotFound(w, r)
		return
	}

	state := r.FormValue("state")
	if state == "" {
		body, err := ioutil.ReadAll(io.LimitReader(r.Body, 64))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		state = string(body)
	}

	switch board.VisibilityState(strings.ToLower(strings.TrimSpace(state))) {
	case board.Visible:
		api.Board.VisibilityChanged(board.Visible)
	case board.Hidden:
		api.Board.VisibilityChanged(board.Hidden)
	default:
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "state must be `visible` or `hidden`"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
