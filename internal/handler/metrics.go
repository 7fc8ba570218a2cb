package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storybook_generations_total",
			Help: "Total number of character image generation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	transformationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_transformations_total",
		Help: "Total number of recorded image transformations.",
	})

	publishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storybook_publishes_total",
			Help: "Total number of successful publish operations by entity.",
		},
		[]string{"entity"},
	)

	uploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_direct_uploads_total",
		Help: "Total number of stored direct uploads.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storybook_token_verifications_total",
			Help: "Total number of bearer token verification attempts by status.",
		},
		[]string{"status"},
	)
)
