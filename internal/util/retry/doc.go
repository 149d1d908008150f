// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation until it succeeds, returns an
// error wrapped with [Fatal], exhausts its attempts, or the context ends. It is
// used when fetching the booster catalog from git or object storage.
package retry
