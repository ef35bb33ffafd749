package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-aggregator/core/storage"
	"auction-aggregator/feature/auctions/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// DefaultObject is the object key of the latest snapshot.
const DefaultObject = "snapshots/latest.json"

// ErrNoSnapshot is returned when no snapshot has been exported yet.
var ErrNoSnapshot = errors.New("no snapshot exported")

// Snapshot is the exported aggregated dataset of one run.
type Snapshot struct {
	RunID       string                    `json:"runId"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Count       int                       `json:"count"`
	Records     []models.AggregatedRecord `json:"records"`
}

// Exporter writes and reads the latest snapshot in object storage.
type Exporter struct {
	client storage.Client
	bucket string
	object string
	logger *zap.Logger
}

// NewExporter creates an Exporter. An empty object uses DefaultObject.
func NewExporter(client storage.Client, bucket, object string, logger *zap.Logger) *Exporter {
	if object == "" {
		object = DefaultObject
	}
	return &Exporter{client: client, bucket: bucket, object: object, logger: logger}
}

// Export overwrites the latest snapshot.
func (e *Exporter) Export(ctx context.Context, snap Snapshot) error {
	snap.Count = len(snap.Records)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = e.client.PutObject(ctx, e.bucket, e.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to %s/%s: %w", e.bucket, e.object, err)
	}

	e.logger.Info("Snapshot exported",
		zap.String("bucket", e.bucket),
		zap.String("object", e.object),
		zap.Int("records", snap.Count),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Latest reads the most recently exported snapshot.
func (e *Exporter) Latest(ctx context.Context) (*Snapshot, error) {
	obj, err := e.client.GetObject(ctx, e.bucket, e.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFound(err)
	}
	defer obj.Close()

	var snap Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, notFound(err)
	}
	return &snap, nil
}

func notFound(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNoSnapshot
	}
	return fmt.Errorf("failed to read snapshot: %w", err)
}
