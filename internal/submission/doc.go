// Package submission performs the final, atomic handoff of a completed draft
// to the catalog. Submission is a single creation call: either the catalog
// accepts the whole release and returns its identifier, or nothing is
// created. Preconditions — credentials present, every asset resolved, the
// draft submittable — are checked locally before any network activity.
package submission
