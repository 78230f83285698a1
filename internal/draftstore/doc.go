// Package draftstore persists release drafts to SQLite so a composition
// session survives process restarts. Each draft is stored as one row keyed by
// its identifier, with the full draft serialized as JSON alongside the
// columns the listing surface queries directly. A file lock in the data
// directory keeps concurrent presskit processes from sharing the database.
package draftstore
