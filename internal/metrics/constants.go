// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Invite key metric names
const (
	MetricNameInviteKeysGenerated = "invite_keys_generated_total"
	MetricNameInviteKeyCollisions = "invite_key_collisions_total"
	MetricNameInviteKeyExhausted  = "invite_key_exhausted_total"
)

// Directory metric names
const (
	MetricNameDirectoryUsers         = "directory_users"
	MetricNameDirectorySubscriptions = "directory_subscriptions"
)

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextInviteKeysGenerated = "Invite keys handed out after a successful uniqueness check"
	HelpTextInviteKeyCollisions = "Generated invite keys rejected because they were already in use"
	HelpTextInviteKeyExhausted  = "Invite key generations that ran out of attempts"

	HelpTextDirectoryUsers         = "Number of users in the directory"
	HelpTextDirectorySubscriptions = "Number of explicit subscription records"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
)

// unmatchedRoute labels requests that did not hit a registered route, so
// random URLs cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// HTTPLatencyBuckets are histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
