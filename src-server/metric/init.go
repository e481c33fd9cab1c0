package metric

import (
	"log/slog"
	"time"

	"planningapp/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planningapp_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register planningapp_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("planningapp_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("planningapp_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("planningapp_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func databaseWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planningapp_database_write_microsec",
		Help: "The latency of a local persistence write in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register planningapp_database_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("planningapp_database_write_microsec metric registered")
		databaseWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-gracefulShutdownCh:
				switch prometheus.Unregister(databaseWrite) {
				case true:
					slog.Debug("planningapp_database_write_microsec metric unregistered")
				case false:
					slog.Warn("planningapp_database_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseWrite:
				databaseWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseWrite.Set(0)
			}
		}
	}()
}

func storeMutations(as *utils.AppState) {
	storeMutations := promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planningapp_store_mutations_total",
		Help: "Store mutations by operation",
	}, []string{"op"})
	good := true
	if err := prometheus.Register(storeMutations); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register planningapp_store_mutations_total metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("planningapp_store_mutations_total metric registered")
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-gracefulShutdownCh:
				switch prometheus.Unregister(storeMutations) {
				case true:
					slog.Debug("planningapp_store_mutations_total metric unregistered")
				case false:
					slog.Warn("planningapp_store_mutations_total metric not registered")
				}
				return
			case op := <-as.MetricChans.StoreMutation:
				storeMutations.WithLabelValues(op).Inc()
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	databaseWrite(as, &clearTickerInterval)
	storeMutations(as)
}
