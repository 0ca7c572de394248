// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so catalog exports can be uploaded to AWS S3 or a
// self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface holds only the operations the catalog performs, which keeps the
// testify mock in core/storage/mocks small.
//
//   - BucketExists / MakeBucket: EnsureBucket creates the export bucket on first use.
//   - PutObject: uploads an export.
//   - ListObjects: lists previous exports.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
