package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	directoryWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "group_directory_write_failures_total",
		Help: "Failed writes of the group directory collection",
	})

	suggestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "suggestions_total",
		Help: "Suggestion workflow transitions by outcome",
	}, []string{"outcome"})

	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_runs_total",
		Help: "Link sweep runs by result",
	}, []string{"result"})

	sweepChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweep_links_checked_total",
		Help: "Links probed by the sweep",
	})

	sweepBroken = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweep_links_broken_total",
		Help: "Groups newly marked broken by the sweep",
	})
)
