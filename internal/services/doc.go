// Package services defines shared utilities consumed by the release
// composition components and the external service clients.
//
// Key responsibilities:
//   - Context helpers that stamp draft IDs, component names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (transient vs auth vs rejection) uniform across the
//     storage and catalog clients.
//
// Use these helpers when wiring new components so operational behaviour
// (error handling, observability, retries) stays consistent.
package services
