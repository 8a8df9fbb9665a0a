// Package metrics defines the custom Prometheus metrics for the library API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// BooksCreatedTotal counts newly created books.
// Label:
//   - genre: the genre of the created book (e.g. "fiction")
var BooksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created, by genre.",
	},
	[]string{"genre"},
)

// UsersCreatedTotal counts newly registered users.
// Label:
//   - role: the role assigned at registration ("admin", "manager", "user", "viewer")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// ConflictsTotal counts requests rejected by a uniqueness rule.
// Label:
//   - entity: "book" (duplicate title+author) or "user" (email taken)
var ConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uniqueness_conflicts_total",
		Help:      "Total number of requests rejected by a uniqueness rule, by entity.",
	},
	[]string{"entity"},
)
