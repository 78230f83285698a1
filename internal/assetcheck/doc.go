// Package assetcheck validates candidate release assets before they enter a
// draft. Audio files are checked against an allow-list of master formats
// (WAV, FLAC, M4A) with duration read from container headers; images are
// checked against the cover art format and dimension rules. All checks
// inspect local bytes only and never touch the network.
package assetcheck
