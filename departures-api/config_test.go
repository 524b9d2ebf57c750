package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/TfGMEnterprise/departure-board/test_helpers"
)

var configVariables = []string{
	"PORT", "RAIL_API_URL", "RAIL_API_KEY", "RAIL_API_TIMEOUT", "NRE_OPENLDBWS_URL",
	"NRE_OPENLDBWS_ACCESS_TOKEN", "RAIL_CRS", "PLATFORM_RULES_FILE", "MAX_SERVICES_PER_PLATFORM",
	"BOARD_API_URL", "BOARD_REQUEST_TIMEOUT", "SCREENSHOT_ENABLED", "SCREENSHOT_INTERVAL",
	"SCREENSHOT_PATH", "SCREENSHOT_REDIS_HOST", "SCREENSHOT_S3_BUCKET", "SCREENSHOT_S3_KEY",
	"AWS_SNS_TOPIC_ARN", "AWS_LAMBDA_FUNCTION_NAME",
}

func clearConfig(t *testing.T) {
	t.Helper()
	for _, name := range configVariables {
		t.Setenv(name, "")
	}
}

func TestLoadConfig(t *testing.T) {
	logger := dlog.Discard()

	t.Run("defaults", func(t *testing.T) {
		clearConfig(t)
		t.Setenv("RAIL_API_URL", "https://api.example.com/departures/HSK")
		t.Setenv("RAIL_API_KEY", "abc123")

		c, err := loadConfig(logger)
		if err != nil {
			t.Fatal(err)
		}

		test_helpers.AssertString(t, c.Port, "5001")
		test_helpers.AssertString(t, c.Crs, "HSK")
		test_helpers.AssertString(t, c.BoardAPIURL, "http://localhost:5001/api/departures")
		test_helpers.AssertString(t, c.ScreenshotPath, "static/image.png")
		test_helpers.AssertBoolean(t, c.ScreenshotEnabled, true)
		test_helpers.AssertBoolean(t, c.Lambda, false)

		if c.RailAPITimeout != 10*time.Second {
			t.Errorf("got RailAPITimeout %v, want 10s", c.RailAPITimeout)
		}

		if c.ScreenshotInterval != 30*time.Second {
			t.Errorf("got ScreenshotInterval %v, want 30s", c.ScreenshotInterval)
		}

		if c.BoardRequestTimeout != 0 {
			t.Errorf("got BoardRequestTimeout %v, want none", c.BoardRequestTimeout)
		}

		if c.MaxServices != model.DefaultMaxServicesPerPlatform {
			t.Errorf("got MaxServices %d, want %d", c.MaxServices, model.DefaultMaxServicesPerPlatform)
		}
	})

	t.Run("SOAP upstream and overrides", func(t *testing.T) {
		clearConfig(t)

		dir, err := ioutil.TempDir("", "departure-board")
		if err != nil {
			t.Fatal(err)
		}
		defer os.RemoveAll(dir)

		rules := filepath.Join(dir, "rules.yaml")
		if err := ioutil.WriteFile(rules, []byte("rules:\n  - destination_contains: Bedford\n    platform: \"1\"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		t.Setenv("NRE_OPENLDBWS_URL", "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb11.asmx")
		t.Setenv("NRE_OPENLDBWS_ACCESS_TOKEN", "token")
		t.Setenv("RAIL_CRS", "BTN")
		t.Setenv("PORT", "8080")
		t.Setenv("PLATFORM_RULES_FILE", rules)
		t.Setenv("MAX_SERVICES_PER_PLATFORM", "3")
		t.Setenv("BOARD_REQUEST_TIMEOUT", "PT15S")
		t.Setenv("SCREENSHOT_ENABLED", "false")
		t.Setenv("SCREENSHOT_INTERVAL", "PT1M")
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "departures")

		c, err := loadConfig(logger)
		if err != nil {
			t.Fatal(err)
		}

		test_helpers.AssertString(t, c.RailAPIURL, "")
		test_helpers.AssertString(t, c.OpenLDBWSAccessToken, "token")
		test_helpers.AssertString(t, c.Crs, "BTN")
		test_helpers.AssertString(t, c.BoardAPIURL, "http://localhost:8080/api/departures")
		test_helpers.AssertBoolean(t, c.ScreenshotEnabled, false)
		test_helpers.AssertBoolean(t, c.Lambda, true)

		if c.MaxServices != 3 {
			t.Errorf("got MaxServices %d, want 3", c.MaxServices)
		}

		if c.BoardRequestTimeout != 15*time.Second {
			t.Errorf("got BoardRequestTimeout %v, want 15s", c.BoardRequestTimeout)
		}

		if c.ScreenshotInterval != time.Minute {
			t.Errorf("got ScreenshotInterval %v, want 1m", c.ScreenshotInterval)
		}

		if got := c.PlatformRules.Assign("", "Bedford"); got != "1" {
			t.Errorf("rules file should assign Bedford to platform 1, got `%s`", got)
		}
	})

	t.Run("invalid settings", func(t *testing.T) {
		cases := map[string]map[string]string{
			"no upstream":       {},
			"no API key":        {"RAIL_API_URL": "https://api.example.com"},
			"no access token":   {"NRE_OPENLDBWS_URL": "https://lite.realtime.nationalrail.co.uk"},
			"bad CRS":           {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "RAIL_CRS": "hassocks"},
			"bad duration":      {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "SCREENSHOT_INTERVAL": "30 seconds"},
			"bad limit":         {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "MAX_SERVICES_PER_PLATFORM": "0"},
			"bad bool":          {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "SCREENSHOT_ENABLED": "sometimes"},
			"missing rules":     {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "PLATFORM_RULES_FILE": "/nonexistent/rules.yaml"},
			"bad board timeout": {"RAIL_API_URL": "https://api.example.com", "RAIL_API_KEY": "k", "BOARD_REQUEST_TIMEOUT": "15"},
		}

		for name, env := range cases {
			t.Run(name, func(t *testing.T) {
				clearConfig(t)
				for k, v := range env {
					t.Setenv(k, v)
				}

				if _, err := loadConfig(logger); err == nil {
					t.Error("expected an error")
				}
			})
		}
	})
}
