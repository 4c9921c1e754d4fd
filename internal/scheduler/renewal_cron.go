package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/lifeos/lifeos-sync/internal/jobs"
)

// StartRenewalCronJobs runs the subscription renewal scan once at startup
// and then daily.
func StartRenewalCronJobs(notifier *jobs.RenewalNotifier) *cron.Cron {
	c := cron.New()

	c.AddFunc("@daily", func() {
		if err := notifier.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunDailyScan failed")
		}
	})

	c.Start()

	go func() {
		if err := notifier.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunDailyScan failed")
		}
	}()

	return c
}
