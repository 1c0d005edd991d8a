// Package metrics defines and registers all custom Prometheus metrics for the
// EdgeRelay core API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package load and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "edgerelay"

// LoginsTotal counts login attempts.
// Labels:
//   - realm: "admin" or "client"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by realm and result.",
	},
	[]string{"realm", "result"},
)

// TokenVerificationsTotal counts token checks on authenticated endpoints.
// Label:
//   - result: "valid", "invalid" (bad signature/expired), or "wrong_realm"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ClientAccountsCreatedTotal counts successfully provisioned client accounts.
var ClientAccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_accounts_created_total",
		Help:      "Total number of client accounts provisioned by admins.",
	},
)
