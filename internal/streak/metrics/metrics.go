package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the streak module.
type Metrics struct {
	Activities   *prometheus.CounterVec
	RewardPoints prometheus.Counter
}

// New creates a new Metrics instance with all streak module metrics registered.
func New() *Metrics {
	return &Metrics{
		Activities: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthanchor_streak_activities_total",
			Help: "Streak activity updates by transition",
		}, []string{"transition"}),
		RewardPoints: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthanchor_reward_points_total",
			Help: "Total reward points handed out",
		}),
	}
}

// IncrementActivity records one activity update with its transition label.
func (m *Metrics) IncrementActivity(transition string) {
	m.Activities.WithLabelValues(transition).Inc()
}

// AddRewardPoints accumulates points granted to actors.
func (m *Metrics) AddRewardPoints(points int) {
	m.RewardPoints.Add(float64(points))
}
