package commentmod

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "commentmod_event_duration_sec",
	Help: "Total duration of comment pipeline phase processing",
}, []string{"phase"})

var eventProcessCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_event_processed",
	Help: "Number of pipeline phases processed",
}, []string{"phase"})

var eventErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_event_errors",
	Help: "Number of pipeline phases which encountered errors",
}, []string{"phase"})

var commentRejectedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_comments_rejected",
	Help: "Number of comments rejected outright, by reason",
}, []string{"reason"})

var commentModeratedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_comments_moderated",
	Help: "Number of comments held back from public display, by reason",
}, []string{"reason"})

var commentDeletedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentmod_comments_deleted",
	Help: "Number of rejected comments deleted during post-persist processing",
})

var notificationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_notifications",
	Help: "Number of operator notification attempts, by outcome",
}, []string{"status"})
