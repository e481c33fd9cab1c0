package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planningapp/src-server/cloud"
	"planningapp/src-server/location"
	"planningapp/src-server/metric"
	"planningapp/src-server/model"
	"planningapp/src-server/route"
	"planningapp/src-server/scheduler"
	"planningapp/src-server/store"
	"planningapp/src-server/utils"
	"planningapp/src-server/weather"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// cloud backend, only when DATABASE_URL is set
	var cloudClient *cloud.Client
	if dsn := as.Config.GetDatabaseURL(); dsn != "" {
		db, err := cloud.New(context.Background(), dsn)
		if err != nil {
			slog.Error("can't connect to cloud database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		cloudClient = cloud.NewClient(db, as.Config.GetJWTSecret(), as.Config.GetJWTExpire())
		if err := cloudClient.EnsureSchema(context.Background()); err != nil {
			slog.Error("can't ensure cloud schema", "error", err)
			os.Exit(1)
		}
	}

	eventStore := store.NewEventStore(as, cloudClient)

	if seedPath := as.Config.GetSeedFile(); seedPath != "" {
		seed, err := model.LoadSeedFile(seedPath)
		if err != nil {
			slog.Error("can't load seed file", "error", err)
			os.Exit(1)
		}
		eventStore.Seed(seed.Calendars, seed.Categories)
	}

	if err := eventStore.Load(context.Background()); err != nil {
		slog.Error("can't load local data", "error", err)
		os.Exit(1)
	}

	// save-time weather enrichment, only when an API key is set
	if apiKey := as.Config.GetOpenWeatherApiKey(); apiKey != "" {
		weatherClient := weather.NewClient(apiKey, "")
		geocoder := location.NewGeocoder(as.Config.GetGeocoderURL())
		eventStore.SetWeatherEnricher(func(ctx context.Context, address string) *model.WeatherInfo {
			info, err := geocoder.Geocode(ctx, address)
			if err != nil {
				slog.Debug("can't geocode event location", "location", address, "error", err)
				return nil
			}
			current, err := weatherClient.CurrentByCoords(ctx, info.Latitude, info.Longitude)
			if err != nil {
				slog.Debug("can't fetch weather", "location", address, "error", err)
				return nil
			}
			return current
		})
	}

	go metric.Init(as)

	if _, err := scheduler.Start(as, eventStore, scheduler.SlogNotifier{}); err != nil {
		slog.Error("can't start scheduler", "error", err)
		os.Exit(1)
	}

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Ping(muxer, as)
		route.Export(muxer, as, eventStore)
		route.Import(muxer, as, eventStore)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
