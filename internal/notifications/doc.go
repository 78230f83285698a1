// Package notifications delivers push notifications for release lifecycle
// events via ntfy. When no topic is configured a noop implementation is
// returned, so callers never need to branch on whether notifications are
// enabled. Delivery is best-effort: a failed notification never affects the
// outcome of the operation that triggered it.
package notifications
