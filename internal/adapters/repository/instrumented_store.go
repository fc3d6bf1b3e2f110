package repository

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/ports"
)

// StoreMetrics holds the collectors updated by InstrumentedStore
type StoreMetrics struct {
	OperationDuration *prometheus.HistogramVec
	Recipes           prometheus.Gauge
}

// NewStoreMetrics creates store collectors and registers them with the given registerer
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_store_operation_duration_seconds",
				Help:    "Duration of recipe store load and save operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "result"},
		),
		Recipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "recipe_store_recipes",
			Help: "Number of recipes seen in the store by the last successful operation",
		}),
	}

	reg.MustRegister(m.OperationDuration, m.Recipes)
	return m
}

// InstrumentedStore decorates a RecipeStore with prometheus metrics
type InstrumentedStore struct {
	next    ports.RecipeStore
	metrics *StoreMetrics
}

// NewInstrumentedStore wraps next so every operation is observed
func NewInstrumentedStore(next ports.RecipeStore, metrics *StoreMetrics) ports.RecipeStore {
	return &InstrumentedStore{next: next, metrics: metrics}
}

func (s *InstrumentedStore) Load(ctx context.Context) ([]entities.Recipe, error) {
	start := time.Now()
	recipes, err := s.next.Load(ctx)
	s.observe("load", start, err)
	if err == nil {
		s.metrics.Recipes.Set(float64(len(recipes)))
	}
	return recipes, err
}

func (s *InstrumentedStore) Save(ctx context.Context, recipes []entities.Recipe) error {
	start := time.Now()
	err := s.next.Save(ctx, recipes)
	s.observe("save", start, err)
	if err == nil {
		s.metrics.Recipes.Set(float64(len(recipes)))
	}
	return err
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	s.metrics.OperationDuration.WithLabelValues(operation, result).Observe(time.Since(start).Seconds())
}
