package main

import (
	"os"
	"strconv"
	"time"

	duration "github.com/ChannelMeter/iso8601duration"
	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/TfGMEnterprise/departure-board/nationalrail"
	rail_client "github.com/TfGMEnterprise/departure-board/rail-client"
	"github.com/TfGMEnterprise/departure-board/screenshot"
	"github.com/pkg/errors"
)

type config struct {
	Port string

	RailAPIURL     string
	RailAPIKey     string
	RailAPITimeout time.Duration

	OpenLDBWSURL         string
	OpenLDBWSAccessToken string
	Crs                  string

	PlatformRules model.PlatformRules
	MaxServices   int

	BoardAPIURL         string
	BoardRequestTimeout time.Duration

	ScreenshotEnabled   bool
	ScreenshotInterval  time.Duration
	ScreenshotPath      string
	ScreenshotRedisHost string
	ScreenshotS3Bucket  string
	ScreenshotS3Key     string

	SNSTopicARN string
	Lambda      bool
}

func lookup(name string) (string, bool) {
	value, exists := os.LookupEnv(name)
	return value, exists && value != ""
}

func lookupDefault(logger *dlog.Logger, name string, def string) string {
	value, ok := lookup(name)
	if !ok {
		logger.Debugf("%s not set in environment; set to default value of %s", name, def)
		return def
	}
	return value
}

func lookupDuration(logger *dlog.Logger, name string, def time.Duration) (time.Duration, error) {
	value, ok := lookup(name)
	if !ok {
		logger.Debugf("%s not set in environment; set to default value of %s", name, def)
		return def, nil
	}

	d, err := duration.FromString(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s provided: %s", name, value)
	}

	return d.ToDuration(), nil
}

func loadConfig(logger *dlog.Logger) (*config, error) {
	var err error

	c := &config{
		Port:                lookupDefault(logger, "PORT", "5001"),
		Crs:                 lookupDefault(logger, "RAIL_CRS", "HSK"),
		ScreenshotPath:      lookupDefault(logger, "SCREENSHOT_PATH", screenshot.DefaultPath),
		ScreenshotS3Key:     lookupDefault(logger, "SCREENSHOT_S3_KEY", "image.png"),
		PlatformRules:       model.DefaultPlatformRules,
		MaxServices:         model.DefaultMaxServicesPerPlatform,
		ScreenshotEnabled:   true,
		ScreenshotRedisHost: os.Getenv("SCREENSHOT_REDIS_HOST"),
		ScreenshotS3Bucket:  os.Getenv("SCREENSHOT_S3_BUCKET"),
		SNSTopicARN:         os.Getenv("AWS_SNS_TOPIC_ARN"),
	}

	_, c.Lambda = lookup("AWS_LAMBDA_FUNCTION_NAME")

	if err := nationalrail.ValidateCRS(c.Crs); err != nil {
		return nil, errors.Wrap(err, "invalid RAIL_CRS")
	}

	if url, ok := lookup("RAIL_API_URL"); ok {
		c.RailAPIURL = url
		if c.RailAPIKey, ok = lookup("RAIL_API_KEY"); !ok {
			return nil, errors.New("RAIL_API_KEY not set in environment")
		}
	} else if url, ok := lookup("NRE_OPENLDBWS_URL"); ok {
		c.OpenLDBWSURL = url
		if c.OpenLDBWSAccessToken, ok = lookup("NRE_OPENLDBWS_ACCESS_TOKEN"); !ok {
			return nil, errors.New("NRE_OPENLDBWS_ACCESS_TOKEN not set in environment")
		}
	} else {
		return nil, errors.New("RAIL_API_URL or NRE_OPENLDBWS_URL not set in environment")
	}

	if c.RailAPITimeout, err = lookupDuration(logger, "RAIL_API_TIMEOUT", rail_client.DefaultTimeout); err != nil {
		return nil, err
	}

	if path, ok := lookup("PLATFORM_RULES_FILE"); ok {
		if c.PlatformRules, err = model.LoadPlatformRules(path); err != nil {
			return nil, err
		}
	}

	if value, ok := lookup("MAX_SERVICES_PER_PLATFORM"); ok {
		if c.MaxServices, err = strconv.Atoi(value); err != nil || c.MaxServices < 1 {
			return nil, errors.Errorf("invalid MAX_SERVICES_PER_PLATFORM value %s", value)
		}
	}

	c.BoardAPIURL = lookupDefault(logger, "BOARD_API_URL", "http://localhost:"+c.Port+"/api/departures")

	if c.BoardRequestTimeout, err = lookupDuration(logger, "BOARD_REQUEST_TIMEOUT", 0); err != nil {
		return nil, err
	}

	if value, ok := lookup("SCREENSHOT_ENABLED"); ok {
		if c.ScreenshotEnabled, err = strconv.ParseBool(value); err != nil {
			return nil, errors.Wrapf(err, "invalid SCREENSHOT_ENABLED value %s", value)
		}
	}

	if c.ScreenshotInterval, err = lookupDuration(logger, "SCREENSHOT_INTERVAL", screenshot.DefaultInterval); err != nil {
		return nil, err
	}

	return c, nil
}
