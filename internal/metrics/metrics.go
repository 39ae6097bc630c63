// Package metrics exposes search activity as Prometheus collectors fed by
// domain.LifecycleHooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/storypath/pkg/domain"
)

// Collectors groups the search metrics on a dedicated registry.
type Collectors struct {
	Registry *prometheus.Registry

	NodeVisits     *prometheus.CounterVec
	PathsFound     *prometheus.CounterVec
	DeadEnds       *prometheus.CounterVec
	Searches       *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storypath_node_visits_total",
				Help: "Total number of node visits during searches",
			},
			[]string{"node_id"},
		),
		PathsFound: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storypath_paths_found_total",
				Help: "Complete paths recorded, by ending category",
			},
			[]string{"ending"},
		),
		DeadEnds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storypath_dead_ends_total",
				Help: "Branches abandoned at a non-terminal node without choices or an unresolved node",
			},
			[]string{"node_id"},
		),
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storypath_searches_total",
				Help: "Completed searches by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storypath_search_duration_seconds",
				Help:    "Duration of searches",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"mode"},
		),
	}
	c.Registry.MustRegister(c.NodeVisits, c.PathsFound, c.DeadEnds, c.Searches, c.SearchDuration)
	return c
}

// Hooks returns lifecycle hooks that record into the collectors.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeVisit: func(_ context.Context, e *domain.NodeEvent) {
			c.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnDeadEnd: func(_ context.Context, e *domain.NodeEvent) {
			c.DeadEnds.WithLabelValues(e.NodeID).Inc()
		},
		OnPathFound: func(_ context.Context, e *domain.PathEvent) {
			ending, _ := e.Path.Ending()
			c.PathsFound.WithLabelValues(ending).Inc()
		},
		OnSearchEnd: func(_ context.Context, e *domain.SearchEvent) {
			c.Searches.WithLabelValues(string(e.Goal.Mode), string(e.Outcome)).Inc()
			c.SearchDuration.WithLabelValues(string(e.Goal.Mode)).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}
