package repository

import "context"

// StorageRepository publishes exported report files to remote storage.
type StorageRepository interface {
	Upload(ctx context.Context, bucket, key, localPath string) (string, error)
}

// StorageFactory builds a StorageRepository for the given AWS profile. The
// profile is only known after the CLI flags are parsed.
type StorageFactory func(profile string) StorageRepository
