package metric

import (
	"context"
	"time"

	"planningapp/src-server/model"
	"planningapp/src-server/utils"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.KVEntry)(nil)).
		Where("key = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
