// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so scenes and asset documents can live in a bucket
// instead of the local filesystem. This supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the target bucket on first use.
//   - ReadObject / WriteObject: whole-object byte transfers.
//   - IsNotFound: recognises a missing key response.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
