package service

import (
	"context"
	"fmt"

	"pharmastock/internal/ws"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertJob periodically pushes the list of products inside the expiry alert
// window to connected dashboards.
type AlertJob struct {
	inventory InventoryService
	publisher Publisher
	scheduler *cron.Cron
}

func NewAlertJob(inventory InventoryService, publisher Publisher) *AlertJob {
	return &AlertJob{
		inventory: inventory,
		publisher: publisher,
		scheduler: cron.New(),
	}
}

// Start schedules Run with a standard five-field cron spec.
func (j *AlertJob) Start(spec string) error {
	if _, err := j.scheduler.AddFunc(spec, func() { j.Run() }); err != nil {
		return fmt.Errorf("invalid alert schedule %q: %w", spec, err)
	}
	j.scheduler.Start()
	zap.L().Info("expiry alert job scheduled", zap.String("spec", spec))
	return nil
}

// Stop waits for a running check to finish.
func (j *AlertJob) Stop() context.Context {
	return j.scheduler.Stop()
}

// Run checks the inventory once and returns how many products are at risk.
func (j *AlertJob) Run() int {
	products, err := j.inventory.GetExpiringProducts()
	if err != nil {
		zap.L().Error("expiry alert job: load expiring products", zap.Error(err))
		return 0
	}
	if len(products) == 0 {
		zap.L().Debug("expiry alert job: nothing expiring")
		return 0
	}

	zap.L().Warn("products close to expiration", zap.Int("count", len(products)))
	j.publisher.Publish(ws.Event{
		Type:    "alert",
		Action:  "expiry_alert",
		Message: fmt.Sprintf("%d product(s) expire within six months", len(products)),
		Data:    products,
	})
	return len(products)
}
