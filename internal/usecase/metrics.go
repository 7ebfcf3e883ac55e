package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	softDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qms_records_soft_deleted_total",
		Help: "Records marked deleted, by kind.",
	}, []string{"kind"})

	fileVersionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qms_file_versions_created_total",
		Help: "Attachment snapshots written to version history, by kind.",
	}, []string{"kind"})

	fileCleanupFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qms_file_cleanup_failures_total",
		Help: "Object deletions that failed after the database change committed.",
	}, []string{"kind"})
)
