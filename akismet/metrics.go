package akismet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var akismetAPIDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "commentmod_akismet_api_duration_sec",
	Help: "Duration of Akismet API calls",
})

var akismetAPICount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commentmod_akismet_api_count",
	Help: "Number of Akismet API calls, by HTTP status code",
}, []string{"status"})
