// Package board polls the departures endpoint and renders the result into the
// two platform panels of a Document.
package board

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/pkg/errors"
)

// RefreshInterval is the fixed period between timer-driven loads.
const RefreshInterval = 30 * time.Second

// VisibilityState mirrors the page visibility of the display.
type VisibilityState string

const (
	Visible VisibilityState = "visible"
	Hidden  VisibilityState = "hidden"
)

// DepartureBoard keeps a Document up to date with the departures endpoint.
// Loads are triggered once on initialization, by a ticker every
// RefreshInterval and whenever the display becomes visible again. At most
// one load runs at a time; triggers arriving during a load are dropped.
type DepartureBoard struct {
	Client   *http.Client
	Document Document
	Logger   *dlog.Logger
	URL      string

	// RequestTimeout bounds a single load. Zero waits indefinitely, and a hung
	// request then holds the guard until it completes.
	RequestTimeout time.Duration

	refreshInterval time.Duration
	refreshing      atomic.Bool
	triggers        chan string
	initialized     atomic.Bool
	wg              sync.WaitGroup
}

// NewDepartureBoard returns a board for the endpoint at url. A nil client
// uses a client with no timeout of its own.
func NewDepartureBoard(url string, document Document, client *http.Client, logger *dlog.Logger) *DepartureBoard {
	if client == nil {
		client = &http.Client{}
	}

	if logger == nil {
		logger = dlog.Discard()
	}

	return &DepartureBoard{
		Client:          client,
		Document:        document,
		Logger:          logger,
		URL:             url,
		refreshInterval: RefreshInterval,
		triggers:        make(chan string, 1),
	}
}

// Initialize checks the document, loads departures immediately and starts the
// recurring timer. Both run until ctx is cancelled; Wait blocks until they
// have stopped.
func (b *DepartureBoard) Initialize(ctx context.Context) error {
	b.Logger.Debug("Initialize")

	if b.Document == nil {
		return errors.New("departure board has no document")
	}

	for _, id := range RequiredElements {
		if !b.Document.HasElement(id) {
			return errors.Wrapf(ErrElementNotFound, "document is missing `%s`", id)
		}
	}

	if !b.initialized.CompareAndSwap(false, true) {
		return errors.New("departure board is already initialized")
	}

	b.wg.Add(2)
	go b.consumeTriggers(ctx)
	go b.startAutoRefresh(ctx)

	return nil
}

// Wait blocks until the goroutines started by Initialize have returned.
func (b *DepartureBoard) Wait() {
	b.wg.Wait()
}

// VisibilityChanged triggers one extra load when the display becomes visible.
// The timer's own schedule is not affected.
func (b *DepartureBoard) VisibilityChanged(state VisibilityState) {
	b.Logger.Debugf("VisibilityChanged: %s", state)

	if state != Visible {
		return
	}

	b.trigger("visibility")
}

// trigger hands a load to the consumer if no load is in flight. The one-slot
// buffer holds the trigger while the consumer returns to its receive; the
// send never blocks, and a trigger arriving during a load is lost.
func (b *DepartureBoard) trigger(source string) bool {
	if b.refreshing.Load() {
		b.Logger.Debugf("%s trigger dropped: load in progress", source)
		return false
	}

	select {
	case b.triggers <- source:
		return true
	default:
		b.Logger.Debugf("%s trigger dropped: load already pending", source)
		return false
	}
}

func (b *DepartureBoard) consumeTriggers(ctx context.Context) {
	defer b.wg.Done()

	b.load(ctx, "initialize")
	b.receiveTriggers(ctx)
}

func (b *DepartureBoard) receiveTriggers(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case source := <-b.triggers:
			b.load(ctx, source)
		}
	}
}

func (b *DepartureBoard) startAutoRefresh(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.trigger("timer")
		}
	}
}

func (b *DepartureBoard) load(ctx context.Context, source string) {
	b.Logger.Debugf("load departures (%s)", source)

	if err := b.LoadDepartures(ctx); err != nil && err != ErrRefreshInProgress {
		b.Logger.Debugf("load departures (%s) failed: %s", source, err)
	}
}

// LoadDepartures fetches the payload once and updates the document. If
// another load is in flight it returns ErrRefreshInProgress without making a
// request. A non-2xx response returns a *ServerError and a transport or
// decoding failure a *NetworkError; both replace the panels with an error
// message.
func (b *DepartureBoard) LoadDepartures(ctx context.Context) error {
	if !b.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	defer b.refreshing.Store(false)

	if b.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.RequestTimeout)
		defer cancel()
	}

	payload, err := b.fetchDepartures(ctx)
	if err != nil {
		var serverErr *ServerError
		if errors.As(err, &serverErr) {
			b.ShowError(ServerErrorMessage)
			return err
		}

		b.Logger.Printf("error fetching departures: %s", err)
		b.ShowError(NetworkErrorMessage)
		return err
	}

	return b.UpdateDisplay(payload)
}

func (b *DepartureBoard) fetchDepartures(ctx context.Context) (*model.DeparturePayload, error) {
	b.Logger.Debugf("fetchDepartures from %s", b.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL, nil)
	if err != nil {
		return nil, &NetworkError{Err: errors.Wrapf(err, "cannot create request for `%s`", b.URL)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: errors.Wrapf(err, "cannot request departures from `%s`", b.URL)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			b.Logger.Printf("cannot close response from `%s`: %s", b.URL, err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return nil, &ServerError{StatusCode: resp.StatusCode}
	}

	body := departuresBody{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "cannot decode departures response")}
	}

	return body.payload()
}

// departuresBody shadows the required payload fields with pointers so that a
// missing or null field can be told apart from an empty one.
type departuresBody struct {
	model.DeparturePayload
	LastUpdated *string          `json:"last_updated"`
	Platform1   *[]model.Service `json:"platform_1"`
	Platform2   *[]model.Service `json:"platform_2"`
}

func (d *departuresBody) payload() (*model.DeparturePayload, error) {
	switch {
	case d.LastUpdated == nil:
		return nil, &NetworkError{Err: errors.New("departures response has no last_updated")}
	case d.Platform1 == nil:
		return nil, &NetworkError{Err: errors.New("departures response has no platform_1")}
	case d.Platform2 == nil:
		return nil, &NetworkError{Err: errors.New("departures response has no platform_2")}
	}

	payload := d.DeparturePayload
	payload.LastUpdated = *d.LastUpdated
	payload.Platform1 = *d.Platform1
	payload.Platform2 = *d.Platform2

	return &payload, nil
}

// UpdateDisplay writes the update time and both platform panels. The panels
// are updated independently; the first error is returned.
func (b *DepartureBoard) UpdateDisplay(payload *model.DeparturePayload) error {
	b.Logger.Debug("UpdateDisplay")

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(b.Document.SetText(UpdateTimeID, payload.LastUpdated))

	if payload.StationName != "" && b.Document.HasElement(StationNameID) {
		record(b.Document.SetText(StationNameID, payload.StationName))
	}

	record(b.UpdatePlatform(Platform1ID, payload.Platform1))
	record(b.UpdatePlatform(Platform2ID, payload.Platform2))

	return firstErr
}

// UpdatePlatform replaces the panel's content with one row per service, in
// the order given, or the "No services" placeholder.
func (b *DepartureBoard) UpdatePlatform(panelID string, services []model.Service) error {
	b.Logger.Debugf("UpdatePlatform %s (%d service(s))", panelID, len(services))

	markup, err := RenderServices(services)
	if err != nil {
		return err
	}

	return b.Document.SetHTML(panelID, markup)
}

// ShowError replaces both platform panels with message.
func (b *DepartureBoard) ShowError(message string) {
	b.Logger.Debugf("ShowError: %s", message)

	markup, err := RenderError(message)
	if err != nil {
		b.Logger.Print(err)
		return
	}

	for _, id := range []string{Platform1ID, Platform2ID} {
		if err := b.Document.SetHTML(id, markup); err != nil {
			b.Logger.Print(err)
		}
	}
}
