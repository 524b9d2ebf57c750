package screenshot

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/TfGMEnterprise/departure-board/board"
	"github.com/TfGMEnterprise/departure-board/model"
)

func findBrowser(t *testing.T) string {
	t.Helper()

	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	t.Skip("no Chrome or Chromium on PATH")
	return ""
}

func TestChromeCapturer_Capture(t *testing.T) {
	execPath := findBrowser(t)

	page := board.NewPage("Hassocks")
	markup, err := board.RenderServices([]model.Service{
		{Std: "12:05", Etd: "On time", Destination: "Brighton", Operator: "Southern", Status: "On time", StatusClass: "on-time"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := page.SetHTML(board.Platform2ID, markup); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(page)
	defer server.Close()

	c := NewChromeCapturer()
	c.ExecPath = execPath
	c.Settle = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("captures a board with services", func(t *testing.T) {
		png, err := c.Capture(ctx, server.URL)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.HasPrefix(png, []byte("\x89PNG")) {
			t.Error("capture is not a PNG")
		}
	})

	t.Run("fails when no service is shown", func(t *testing.T) {
		empty := httptest.NewServer(board.NewPage("Hassocks"))
		defer empty.Close()

		c.WaitTimeout = 500 * time.Millisecond

		if _, err := c.Capture(ctx, empty.URL); err == nil {
			t.Error("expected an error for a board without services")
		}
	})
}
