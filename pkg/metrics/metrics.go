package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dealcraft", Name: "http_requests_total", Help: "Handled HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	AuthRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dealcraft", Name: "auth_rejected_total", Help: "Requests rejected by token verification, by strategy and reason."},
		[]string{"strategy", "reason"},
	)
	BidsForbidden = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "dealcraft", Name: "bids_forbidden_total", Help: "Bid listings rejected because the email filter did not match the caller."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(AuthRejected)
	reg.MustRegister(BidsForbidden)
}
