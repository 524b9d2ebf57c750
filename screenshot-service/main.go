package main

import (
	"fmt"
	"os"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/screenshot"
	"github.com/spf13/cobra"
)

func newRootCmd(capturer screenshot.Capturer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshot-service",
		Short: "Take one screenshot of the departure board",
		Long: `screenshot-service loads the departure board in headless Chrome, waits for
at least one service to be shown and saves an 800x480 PNG of it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			output, _ := cmd.Flags().GetString("output")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			s := &screenshot.Service{
				Capturer: capturer,
				Store:    &screenshot.FileImageStore{Path: output},
				Logger:   dlog.NewComponentLogger("screenshot-service"),
				URL:      url,
				Timeout:  timeout,
			}

			if err := s.TakeScreenshot(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Screenshot successful")
			return nil
		},
	}

	cmd.Flags().String("url", "http://localhost:5001", "URL of the departure board")
	cmd.Flags().String("output", screenshot.DefaultPath, "path of the PNG to write")
	cmd.Flags().Duration("timeout", screenshot.DefaultTimeout, "time allowed for the whole capture")

	return cmd
}

func main() {
	if err := newRootCmd(screenshot.NewChromeCapturer()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Screenshot failed: %s\n", err)
		os.Exit(1)
	}
}
