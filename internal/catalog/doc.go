// Package catalog consumes the release persistence API. CreateRelease sends
// the fully resolved release payload and returns the new release identifier,
// translating server-side rejections into typed errors: per-field validation
// failures, auth expiry, rate limiting, and transient faults.
package catalog
