// Package metrics defines and registers all custom Prometheus metrics for the
// onboarding API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onboarding"

// InvitesSentTotal counts registration invitations generated by HR.
var InvitesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invites_sent_total",
		Help:      "Total number of registration invitations sent.",
	},
)

// ApplicationsSubmittedTotal counts onboarding application submissions,
// including re-submissions after a rejection.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of onboarding applications submitted.",
	},
)

// ApplicationsReviewedTotal counts HR decisions on onboarding applications.
// Label:
//   - decision: "approved" or "rejected"
var ApplicationsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_reviewed_total",
		Help:      "Total number of onboarding application reviews, by decision.",
	},
	[]string{"decision"},
)

// DocumentsUploadedTotal counts visa document uploads and re-uploads.
// Label:
//   - type: the document type (e.g. "OPT Receipt")
var DocumentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents uploaded, by document type.",
	},
	[]string{"type"},
)

// DocumentsReviewedTotal counts HR decisions on visa documents.
// Labels:
//   - type: the document type
//   - decision: "approved" or "rejected"
var DocumentsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_reviewed_total",
		Help:      "Total number of document reviews, by type and decision.",
	},
	[]string{"type", "decision"},
)

// RemindersSentTotal counts visa reminder emails sent to employees.
var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of visa reminder emails sent.",
	},
)
