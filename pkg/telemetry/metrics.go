package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricAnimationsStarted counts typewriter animations started.
	MetricAnimationsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "typeline",
		Name:      "animations_started_total",
		Help:      "Number of typewriter animations started.",
	})
	// MetricAnimationsCompleted counts animations that revealed all characters.
	MetricAnimationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "typeline",
		Name:      "animations_completed_total",
		Help:      "Number of typewriter animations that ran to completion.",
	})
	// MetricAnimationsCanceled counts animations cut off by a new play or stop.
	MetricAnimationsCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "typeline",
		Name:      "animations_canceled_total",
		Help:      "Number of typewriter animations canceled before completion.",
	})
	// MetricFramesRendered counts frames pushed to the display sink.
	MetricFramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "typeline",
		Name:      "frames_rendered_total",
		Help:      "Number of display frames written to the sink.",
	})
)
