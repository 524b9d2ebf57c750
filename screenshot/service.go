// Package screenshot captures the rendered departure board as a PNG for
// e-paper and other static displays.
package screenshot

import (
	"context"
	"sync"
	"time"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/repository"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds one capture including browser start-up.
const DefaultTimeout = 60 * time.Second

// Service takes screenshots of the board at URL and stores the latest one.
type Service struct {
	Capturer Capturer
	Store    repository.ImageStore
	Throttle Throttle
	Logger   *dlog.Logger
	URL      string
	Timeout  time.Duration

	wg sync.WaitGroup
}

// TakeScreenshot captures the board once and stores the image.
func (s *Service) TakeScreenshot(ctx context.Context) error {
	s.Logger.Debugf("TakeScreenshot of %s", s.URL)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	png, err := s.Capturer.Capture(ctx, s.URL)
	if err != nil {
		return errors.Wrap(err, "cannot take screenshot")
	}

	if len(png) == 0 {
		return errors.New("screenshot is empty")
	}

	if err := s.Store.Put(ctx, png); err != nil {
		return errors.Wrap(err, "cannot store screenshot")
	}

	s.Logger.Printf("Screenshot saved (%d bytes)", len(png))
	return nil
}

// TriggerIfDue starts a screenshot in the background when the throttle allows
// it and returns immediately. The capture outlives ctx's cancellation but
// keeps its values. Failures are logged.
func (s *Service) TriggerIfDue(ctx context.Context) bool {
	allowed, err := s.Throttle.Allow()
	if err != nil {
		s.Logger.Printf("cannot check screenshot throttle: %s", err)
		return false
	}

	if !allowed {
		return false
	}

	s.Logger.Printf("Screenshot triggered at %s", time.Now().Format("15:04:05"))

	s.wg.Add(1)
	go func(ctx context.Context) {
		defer s.wg.Done()

		if err := s.TakeScreenshot(ctx); err != nil {
			s.Logger.Printf("Screenshot failed: %s", err)
		}
	}(context.WithoutCancel(ctx))

	return true
}

// Wait blocks until background screenshots have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
