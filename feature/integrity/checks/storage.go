package checks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"auction-aggregator/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of an object storage check.
type StorageReport struct {
	Bucket         string `json:"bucket"`
	BucketExists   bool   `json:"bucket_exists"`
	Object         string `json:"object"`
	SnapshotExists bool   `json:"snapshot_exists"`
}

// CheckStorage reports whether the snapshot bucket and object exist.
func CheckStorage(ctx context.Context, client storage.Client, bucket, object string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Object: object}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return report, nil
		}
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}
	defer obj.Close()

	// minio reports missing objects on first read
	buf := make([]byte, 1)
	if _, err := obj.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return report, nil
		}
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}
	report.SnapshotExists = true
	return report, nil
}

// FixStorage creates the snapshot bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string) error {
	return storage.EnsureBucket(ctx, client, bucket, region)
}
