package linkcheck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// probeTotal counts probes by matched rule and verdict
	probeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkcheck_probe_total",
		Help: "Total link probes by rule and verdict",
	}, []string{"rule", "verdict"})
)

func ruleLabel(rule string) string {
	if rule == "" {
		return "default"
	}
	return rule
}
