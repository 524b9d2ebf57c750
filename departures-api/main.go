package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/TfGMEnterprise/departure-board/board"
	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/nationalrail"
	rail_client "github.com/TfGMEnterprise/departure-board/rail-client"
	"github.com/TfGMEnterprise/departure-board/repository"
	"github.com/TfGMEnterprise/departure-board/screenshot"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

func main() {
	logger := dlog.NewComponentLogger("departures-api")

	logger.Debug("main")

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Fatal(err)
	}

	location, err := time.LoadLocation("Europe/London")
	if err != nil {
		logger.Fatal(errors.Wrap(err, "cannot load Europe/London time zone"))
	}

	api := &DeparturesAPI{
		Logger:      logger,
		Source:      newDepartureSource(cfg, logger),
		Rules:       cfg.PlatformRules,
		MaxServices: cfg.MaxServices,
		Crs:         cfg.Crs,
		Location:    location,
	}

	var sess *session.Session
	if cfg.SNSTopicARN != "" || cfg.ScreenshotS3Bucket != "" {
		sess = session.Must(session.NewSession())
	}

	if cfg.SNSTopicARN != "" {
		api.Publisher = &SNSPublisher{
			Logger:      logger,
			SNSClient:   sns.New(sess),
			SNSTopicARN: aws.String(cfg.SNSTopicARN),
		}
	}

	if cfg.Lambda {
		lambda.Start(api.LambdaHandler)
		return
	}

	var pool *redis.Pool
	if cfg.ScreenshotRedisHost != "" {
		pool = repository.NewRedisPool(repository.RedisPoolHost(cfg.ScreenshotRedisHost))

		defer func() {
			logger.Debug("close Redis pool")
			if err := pool.Close(); err != nil {
				logger.Print("failed to close Redis pool")
			}
		}()
	}

	api.Images = newImageStore(cfg, sess, pool)

	page := board.NewPage(api.stationName(nil))
	api.Page = page

	db := board.NewDepartureBoard(cfg.BoardAPIURL, page, nil, dlog.NewComponentLogger("board"))
	db.RequestTimeout = cfg.BoardRequestTimeout
	api.Board = db

	var shots *screenshot.Service
	if cfg.ScreenshotEnabled {
		shots = &screenshot.Service{
			Capturer: screenshot.NewChromeCapturer(),
			Store:    api.Images,
			Throttle: newThrottle(cfg, pool),
			Logger:   dlog.NewComponentLogger("screenshot"),
			URL:      "http://localhost:" + cfg.Port + "/",
		}
		api.Screenshots = shots
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		logger.Fatal(errors.Wrapf(err, "cannot listen on port %s", cfg.Port))
	}

	server := &http.Server{
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Printf("cannot shut down server: %s", err)
		}
	}()

	if err := db.Initialize(ctx); err != nil {
		logger.Fatal(err)
	}

	logger.Printf("Serving departures for %s on port %s", cfg.Crs, cfg.Port)

	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		logger.Fatal(err)
	}

	db.Wait()
	if shots != nil {
		shots.Wait()
	}
}

func newDepartureSource(cfg *config, logger *dlog.Logger) rail_client.RailClientInterface {
	if cfg.RailAPIURL != "" {
		return rail_client.NewRailClient(cfg.RailAPIURL, cfg.RailAPIKey, cfg.RailAPITimeout, logger)
	}

	return &nationalrail.BoardSource{
		Logger:  logger,
		Service: nationalrail.NewLDBServiceSoap(nationalrail.NewAuthenticatedClient(cfg.OpenLDBWSURL, cfg.OpenLDBWSAccessToken)),
		Crs:     cfg.Crs,
		Timeout: cfg.RailAPITimeout,
	}
}

func newImageStore(cfg *config, sess *session.Session, pool *redis.Pool) repository.ImageStore {
	switch {
	case cfg.ScreenshotS3Bucket != "":
		return &screenshot.S3ImageStore{
			Client: s3.New(sess),
			Bucket: cfg.ScreenshotS3Bucket,
			Key:    cfg.ScreenshotS3Key,
		}
	case pool != nil:
		return &repository.RedisImageStore{
			Pool: pool,
			Key:  "departure-board:" + cfg.Crs + ":image",
		}
	default:
		return &screenshot.FileImageStore{Path: cfg.ScreenshotPath}
	}
}

func newThrottle(cfg *config, pool *redis.Pool) screenshot.Throttle {
	if pool != nil {
		return &repository.RedisThrottle{
			Pool:     pool,
			Key:      "departure-board:" + cfg.Crs + ":screenshot",
			Interval: cfg.ScreenshotInterval,
		}
	}

	return screenshot.NewIntervalThrottle(cfg.ScreenshotInterval)
}
