// Package release holds the draft domain model: the ReleaseDraft aggregate,
// its ordered track entries, and the assets they reference.
//
// Asset state is monotonic. A pending asset either resolves to a remote
// reference after a successful upload or records the failure and stays
// pending; a resolved asset never reverts. Draft mutations run synchronously
// on the caller's goroutine and never perform network I/O; candidate files are
// validated through the assetcheck gate before they enter the draft.
//
// Treat this package as the single source of truth for submittability rules;
// the wizard's stage gates and the submission precondition both build on the
// predicates defined here.
package release
