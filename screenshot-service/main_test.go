package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TfGMEnterprise/departure-board/test_helpers"
	"github.com/pkg/errors"
)

type stubCapturer struct {
	url     string
	png     []byte
	err     error
	timeout time.Duration
}

func (c *stubCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	c.url = url
	if deadline, ok := ctx.Deadline(); ok {
		c.timeout = time.Until(deadline)
	}
	return c.png, c.err
}

func TestRootCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "screenshot-service")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	t.Run("writes the screenshot to --output", func(t *testing.T) {
		output := filepath.Join(dir, "static", "image.png")
		capturer := &stubCapturer{png: []byte("\x89PNG\r\n\x1a\nboard")}

		cmd := newRootCmd(capturer)
		var stdout bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetArgs([]string{"--url", "http://board.local:8080/", "--output", output, "--timeout", "5s"})

		if err := cmd.Execute(); err != nil {
			t.Fatal(err)
		}

		test_helpers.AssertString(t, capturer.url, "http://board.local:8080/")
		test_helpers.AssertString(t, stdout.String(), "Screenshot successful\n")

		if capturer.timeout <= 0 || capturer.timeout > 5*time.Second {
			t.Errorf("capture deadline %v should be within --timeout", capturer.timeout)
		}

		got, err := ioutil.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, capturer.png) {
			t.Errorf("got %q, want %q", got, capturer.png)
		}
	})

	t.Run("uses the local board by default", func(t *testing.T) {
		capturer := &stubCapturer{err: errors.New("`.service-item` not visible")}

		cmd := newRootCmd(capturer)
		cmd.SetArgs([]string{"--output", filepath.Join(dir, "unused.png")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected the capture error")
		}

		test_helpers.AssertString(t, capturer.url, "http://localhost:5001")

		if _, err := os.Stat(filepath.Join(dir, "unused.png")); !os.IsNotExist(err) {
			t.Error("no image should be written when the capture fails")
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		cmd := newRootCmd(&stubCapturer{})
		cmd.SetArgs([]string{"http://localhost:5001"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected an error for a positional argument")
		}
	})
}
