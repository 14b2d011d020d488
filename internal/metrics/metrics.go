// Package metrics defines and registers all custom Prometheus metrics for
// the bookshelf catalog API. It is the single source of truth for metric
// names, labels, and help strings, and depends on no other internal package
// so both core services and API middleware may increment counters.
//
// Metrics register with the default Prometheus registry via promauto at
// package init; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "missing_header", "malformed", "bad_signature", "expired",
//     "unknown_subject", "role_mismatch"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Book metrics ──────────────────────────────────────────────────────────────

// BooksCreatedTotal counts newly created books.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)

// BooksUnpublishedTotal counts soft deletes (published → unpublished).
var BooksUnpublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_unpublished_total",
		Help:      "Total number of books transitioned to the unpublished state.",
	},
)

// BookSearchesTotal counts list operations.
// Label:
//   - filtered: "true" when a search term was supplied, "false" otherwise
var BookSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_searches_total",
		Help:      "Total number of book list operations, by whether a search filter was applied.",
	},
	[]string{"filtered"},
)

// CoverUploadsTotal counts stored cover images.
var CoverUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cover_uploads_total",
		Help:      "Total number of cover images stored.",
	},
)
