package screenshot

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// Board dimensions in CSS pixels.
const (
	Width  = 800
	Height = 480
)

// Capturer renders a page and returns it as a PNG.
type Capturer interface {
	Capture(ctx context.Context, url string) ([]byte, error)
}

// ChromeCapturer drives a headless Chrome. Each capture starts and stops its
// own browser.
type ChromeCapturer struct {
	// Scale is the device scale factor; 2 produces a 1600x960 image.
	Scale float64

	// WaitTimeout bounds the wait for each required selector.
	WaitTimeout time.Duration

	// Settle is the pause after the board appears and before the capture.
	Settle time.Duration

	// ExecPath overrides the browser binary chromedp looks for.
	ExecPath string
}

// NewChromeCapturer returns a capturer with the board's defaults.
func NewChromeCapturer() *ChromeCapturer {
	return &ChromeCapturer{
		Scale:       2,
		WaitTimeout: 10 * time.Second,
		Settle:      2 * time.Second,
	}
}

func (c *ChromeCapturer) allocatorOptions() []chromedp.ExecAllocatorOption {
	options := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(Width, Height),
	)

	if c.ExecPath != "" {
		options = append(options, chromedp.ExecPath(c.ExecPath))
	}

	return options
}

// Capture loads url, waits for the board and at least one service row, and
// captures the viewport.
func (c *ChromeCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var png []byte

	if err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(Width, Height, chromedp.EmulateScale(c.Scale)),
		chromedp.Navigate(url),
		c.waitVisible(".departure-board"),
		c.waitVisible(".service-item"),
		chromedp.Sleep(c.Settle),
		chromedp.CaptureScreenshot(&png),
	); err != nil {
		return nil, errors.Wrapf(err, "cannot capture `%s`", url)
	}

	return png, nil
}

func (c *ChromeCapturer) waitVisible(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if c.WaitTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.WaitTimeout)
			defer cancel()
		}

		if err := chromedp.WaitVisible(selector, chromedp.ByQuery).Do(ctx); err != nil {
			return errors.Wrapf(err, "`%s` not visible", selector)
		}
		return nil
	})
}
