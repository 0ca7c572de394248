package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"media-catalog/core/storage"
	"media-catalog/core/tree"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	// ExportPrefix is the object prefix of uploaded exports.
	ExportPrefix = "exports/"
	// ExportContentType is the content type of an export.
	ExportContentType = "text/tab-separated-values"
)

// ExportHeader is the first row of an export.
var ExportHeader = []string{"volume", "path", "size", "modified", "type", "state", "hash", "hashed"}

// WriteTSV writes one tab separated row per file of every volume.
func WriteTSV(w io.Writer, vols []*tree.Volume) (int, error) {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(ExportHeader); err != nil {
		return 0, err
	}

	rows := 0
	for _, vol := range vols {
		for _, f := range vol.Root.AllFiles() {
			record := []string{
				vol.Path,
				f.Path(),
				strconv.FormatInt(f.Size, 10),
				formatTime(f.LastModified),
				f.Type,
				f.State.String(),
				f.Hash,
				formatTime(f.HashCreated),
			}
			if err := cw.Write(record); err != nil {
				return rows, err
			}
			rows++
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Exporter uploads catalog exports to object storage.
type Exporter struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter creates a new exporter.
func NewExporter(client storage.Client, bucket, region string, logger *zap.Logger) *Exporter {
	return &Exporter{client: client, bucket: bucket, region: region, logger: logger, now: time.Now}
}

// ObjectName returns the object name of an export taken at t.
func ObjectName(t time.Time) string {
	return ExportPrefix + "catalog-" + t.UTC().Format("20060102T150405Z") + ".tsv"
}

// Upload writes the export of vols to the bucket and returns the object name.
func (e *Exporter) Upload(ctx context.Context, vols []*tree.Volume) (string, error) {
	if err := storage.EnsureBucket(ctx, e.client, e.bucket, e.region); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	rows, err := WriteTSV(&buf, vols)
	if err != nil {
		return "", fmt.Errorf("failed to render export: %w", err)
	}

	name := ObjectName(e.now())
	_, err = e.client.PutObject(ctx, e.bucket, name, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: ExportContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", name, err)
	}

	e.logger.Info("Export uploaded",
		zap.String("bucket", e.bucket),
		zap.String("object", name),
		zap.Int("rows", rows))
	return name, nil
}

// List returns the names of the uploaded exports.
func (e *Exporter) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range e.client.ListObjects(ctx, e.bucket, minio.ListObjectsOptions{Prefix: ExportPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}
