package scheduler

import (
	"fmt"
	"time"

	"planningapp/src-server/store"
	"planningapp/src-server/utils"

	"github.com/robfig/cron/v3"
)

// Start wires the periodic jobs onto a cron runner and starts it. The
// returned cron is stopped through the graceful shutdown channel.
func Start(as *utils.AppState, s *store.EventStore, notifier Notifier) (*cron.Cron, error) {
	runner := cron.New()

	scanInterval := as.Config.GetReminderScanInterval()
	scanner := NewReminderScanner(s, notifier, scanInterval)
	if _, err := runner.AddFunc(everySpec(scanInterval), func() {
		scanner.Scan(time.Now())
	}); err != nil {
		return nil, fmt.Errorf("scheduler.Start: reminder scan: %w", err)
	}

	if _, err := runner.AddFunc(everySpec(as.Config.GetCloudSyncInterval()), func() {
		CloudPush(s)
	}); err != nil {
		return nil, fmt.Errorf("scheduler.Start: cloud push: %w", err)
	}

	runner.Start()

	shutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		<-shutdownCh
		<-runner.Stop().Done()
	}()

	return runner, nil
}

func everySpec(interval time.Duration) string {
	return "@every " + interval.String()
}
