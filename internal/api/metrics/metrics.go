// Package metrics defines and registers all custom Prometheus metrics for the
// blog platform. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics together with the echoprometheus HTTP
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully registered authors.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful author registrations.",
	},
)

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts drafts created through the dashboard.
var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created (as drafts).",
	},
)

// ArticlesPublishedTotal counts Drafted → Published transitions. Repeated
// publish attempts on an already-published article are not counted.
var ArticlesPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_published_total",
		Help:      "Total number of articles transitioned to Published.",
	},
)

// ArticleReadsTotal counts views served through the counted article route.
var ArticleReadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_reads_total",
		Help:      "Total number of counted article reads.",
	},
)

// SearchesTotal counts search queries executed.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of article searches executed.",
	},
)
