// Package archive persists generated analysis reports to Google Cloud
// Storage so they survive service restarts and can be audited later.
package archive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

const contentTypeJSON = "application/json"

// ObjectName builds the storage path for a report, partitioned by the day
// the report was generated.
// e.g. reports/2024/03/15/6f1d...-a2.json
func ObjectName(reportID string, generatedAt time.Time) string {
	return fmt.Sprintf("reports/%s/%s.json", generatedAt.Format("2006/01/02"), reportID)
}

// Upload writes the marshaled report JSON to the bucket under objectName.
// It assumes Application Default Credentials are configured.
func Upload(ctx context.Context, bucketName, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("archive: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	obj := client.Bucket(bucketName).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentTypeJSON
	defer func() {
		// Ensure the writer is closed even on early returns
		_ = w.Close()
	}()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("archive: write report to GCS: %w", err)
	}

	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("archive: finalize upload: %w", err)
	}

	return nil
}

// Fetch downloads a previously archived report from the given GCS URI.
func Fetch(ctx context.Context, gcsURI string) ([]byte, error) {
	// gcsURI example: gs://my-bucket/reports/2024/03/15/<id>.json
	if !strings.HasPrefix(gcsURI, "gs://") {
		return nil, fmt.Errorf("archive: invalid GCS URI: %s", gcsURI)
	}

	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("archive: invalid GCS URI (no object path): %s", gcsURI)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: create storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(parts[0]).Object(parts[1]).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: reading object %s: %w", trimmed, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: reading bytes: %w", err)
	}

	return data, nil
}
