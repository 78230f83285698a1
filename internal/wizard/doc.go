// Package wizard sequences release composition through its ordered stages:
// Basics, Tracks, Distribution, Credits, Review. Advancing is gated on
// stage-specific validation of the draft; retreating is always allowed and
// never clears data. All draft mutations flow through the wizard so stage
// validation results can be cached and invalidated correctly.
package wizard
