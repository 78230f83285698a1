// Package logging builds slog loggers with console and JSON handlers plus
// attribute helpers shared by every component. Console output renders as
// "TIMESTAMP LEVEL component: msg k=v"; the component attribute is lifted out
// of the key/value list into the message prefix.
package logging
