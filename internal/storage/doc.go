// Package storage consumes the object storage upload API. Only the upload
// contract is implemented here: PutAsset streams one asset's bytes and
// returns the durable remote reference. Incremental byte progress is reported
// through a counting reader as the transport drains the request body.
package storage
