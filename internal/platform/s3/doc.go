// Package s3 provides a client for S3-compatible object storage.
//
// The launcher reads booster catalogs from a bucket and publishes local
// catalogs to one. Any S3-compatible endpoint works; path-style addressing can
// be enabled for stores such as MinIO that do not serve virtual-hosted buckets.
package s3
