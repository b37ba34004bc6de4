package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cascadeOperations counts cascade engine invocations by operation and
// parent type, labeled with the outcome.
var cascadeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "adcraft_cascade_operations_total",
		Help: "Cascade operations by operation, parent type and result.",
	},
	[]string{"operation", "parent_type", "result"},
)

func observeCascade(operation, parentType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	cascadeOperations.WithLabelValues(operation, parentType, result).Inc()
}
