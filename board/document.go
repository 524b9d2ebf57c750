package board

import (
	"bytes"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/pkg/errors"
)

// Element identifiers the board writes to.
const (
	UpdateTimeID  = "update-time"
	Platform1ID   = "platform-1"
	Platform2ID   = "platform-2"
	StationNameID = "station-name"
)

// RequiredElements must exist in a Document before the board is initialized.
var RequiredElements = []string{UpdateTimeID, Platform1ID, Platform2ID}

// Document is the set of addressable elements the board renders into.
type Document interface {
	HasElement(id string) bool
	SetText(id string, text string) error
	SetHTML(id string, markup template.HTML) error
}

// ErrElementNotFound is returned when writing to an element the document
// does not have.
var ErrElementNotFound = errors.New("element not found")

type element struct {
	markup template.HTML
}

// Page is an in-memory Document holding the departure board page. It is safe
// for concurrent use: the board writes while HTTP handlers render.
type Page struct {
	Title string

	mux      sync.RWMutex
	elements map[string]*element
}

// NewPage returns a Page with the board's elements in their loading state.
func NewPage(title string) *Page {
	p := &Page{
		Title:    title,
		elements: make(map[string]*element),
	}

	loading, _ := RenderPlaceholder("Loading departures...")

	p.elements[StationNameID] = &element{markup: template.HTML(template.HTMLEscapeString(title))}
	p.elements[UpdateTimeID] = &element{markup: "--:--:--"}
	p.elements[Platform1ID] = &element{markup: loading}
	p.elements[Platform2ID] = &element{markup: loading}

	return p
}

func (p *Page) HasElement(id string) bool {
	p.mux.RLock()
	defer p.mux.RUnlock()

	_, ok := p.elements[id]
	return ok
}

// SetText replaces the element's content with escaped text.
func (p *Page) SetText(id string, text string) error {
	return p.SetHTML(id, template.HTML(template.HTMLEscapeString(text)))
}

// SetHTML replaces the element's content with markup, which must already be
// safe to embed.
func (p *Page) SetHTML(id string, markup template.HTML) error {
	p.mux.Lock()
	defer p.mux.Unlock()

	el, ok := p.elements[id]
	if !ok {
		return errors.Wrapf(ErrElementNotFound, "cannot set content of `%s`", id)
	}

	el.markup = markup
	return nil
}

// InnerHTML returns the current content of an element.
func (p *Page) InnerHTML(id string) (template.HTML, error) {
	p.mux.RLock()
	defer p.mux.RUnlock()

	el, ok := p.elements[id]
	if !ok {
		return "", errors.Wrapf(ErrElementNotFound, "cannot get content of `%s`", id)
	}

	return el.markup, nil
}

type pageView struct {
	Title       string
	StationName template.HTML
	UpdateTime  template.HTML
	Platform1   template.HTML
	Platform2   template.HTML
}

// Render writes the complete page.
func (p *Page) Render(w io.Writer) error {
	p.mux.RLock()
	view := pageView{
		Title:       p.Title,
		StationName: p.elements[StationNameID].markup,
		UpdateTime:  p.elements[UpdateTimeID].markup,
		Platform1:   p.elements[Platform1ID].markup,
		Platform2:   p.elements[Platform2ID].markup,
	}
	p.mux.RUnlock()

	return errors.Wrap(pageTemplate.Execute(w, view), "cannot render departure board page")
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if r.Method == http.MethodHead {
		return
	}

	_, _ = w.Write(buf.Bytes())
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=800, height=480">
    <meta http-equiv="refresh" content="30">
    <title>{{ .Title }}</title>
    <style>
        body { margin: 0; width: 800px; height: 480px; background: #000; color: #ffb000; font-family: "Helvetica Neue", Arial, sans-serif; }
        .departure-board { display: flex; flex-direction: column; height: 100%; padding: 12px 16px; box-sizing: border-box; }
        .board-header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid #333; padding-bottom: 6px; }
        .board-header h1 { margin: 0; font-size: 28px; }
        .last-updated { font-size: 14px; color: #aaa; }
        .platforms { display: flex; flex: 1; gap: 16px; margin-top: 8px; }
        .platform { flex: 1; display: flex; flex-direction: column; }
        .platform h2 { margin: 0 0 6px 0; font-size: 18px; color: #fff; }
        .service-item { display: flex; align-items: center; border-bottom: 1px solid #222; padding: 6px 0; }
        .service-time { width: 64px; }
        .scheduled-time { font-size: 20px; font-weight: bold; }
        .estimated-time { font-size: 14px; color: #ff6b6b; }
        .service-details { flex: 1; overflow: hidden; }
        .destination { font-size: 18px; white-space: nowrap; text-overflow: ellipsis; overflow: hidden; }
        .operator { font-size: 12px; color: #aaa; }
        .service-status { font-size: 14px; padding: 2px 6px; border-radius: 3px; }
        .status-on-time { color: #4caf50; }
        .status-delayed { color: #ff9800; }
        .status-cancelled { color: #ff6b6b; text-decoration: line-through; }
        .loading { padding: 12px 0; color: #aaa; }
    </style>
</head>
<body>
<div class="departure-board">
    <div class="board-header">
        <h1 id="station-name">{{ .StationName }}</h1>
        <div class="last-updated">Last updated: <span id="update-time">{{ .UpdateTime }}</span></div>
    </div>
    <div class="platforms">
        <div class="platform">
            <h2>Platform 1</h2>
            <div id="platform-1" class="services">{{ .Platform1 }}</div>
        </div>
        <div class="platform">
            <h2>Platform 2</h2>
            <div id="platform-2" class="services">{{ .Platform2 }}</div>
        </div>
    </div>
</div>
</body>
</html>
`))
