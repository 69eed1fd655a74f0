package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	appconfig "board-backend/internal/config"
	"board-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/robfig/cron/v3"
)

// LogLister feeds the exporter audit entries to ship, including
// soft-deleted rows; the archive is the compliance record.
type LogLister interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]*models.ModerationLog, error)
}

// Exporter ships daily moderation log batches to object storage.
type Exporter struct {
	client   *s3.Client
	bucket   string
	logs     LogLister
	schedule string
	cron     *cron.Cron
}

func NewExporter(ctx context.Context, cfg *appconfig.Config, logs LogLister) (*Exporter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("archive config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
	})

	return &Exporter{
		client:   client,
		bucket:   cfg.Archive.Bucket,
		logs:     logs,
		schedule: cfg.Archive.Schedule,
	}, nil
}

// Start registers the export job on its cron schedule. Call Stop on shutdown.
func (e *Exporter) Start() error {
	e.cron = cron.New()
	_, err := e.cron.AddFunc(e.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := e.ExportSince(ctx, time.Now().UTC().AddDate(0, 0, -1)); err != nil {
			log.Printf("[Archive] export failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	e.cron.Start()
	log.Printf("[Archive] export scheduled: %s", e.schedule)
	return nil
}

func (e *Exporter) Stop() {
	if e.cron != nil {
		e.cron.Stop()
	}
}

// ExportSince uploads all log entries created at or after since as one
// JSON object keyed by export timestamp.
func (e *Exporter) ExportSince(ctx context.Context, since time.Time) error {
	entries, err := e.logs.ListCreatedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}
	if len(entries) == 0 {
		log.Printf("[Archive] nothing to export since %s", since.Format(time.RFC3339))
		return nil
	}

	dtos := make([]models.ModerationLogDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entry.DTO())
	}

	payload, err := json.Marshal(map[string]any{
		"exported_at": time.Now().UTC().Format(time.RFC3339),
		"since":       since.Format(time.RFC3339),
		"count":       len(dtos),
		"entries":     dtos,
	})
	if err != nil {
		return fmt.Errorf("marshal logs: %w", err)
	}

	key := fmt.Sprintf("moderation-logs/%s.json", time.Now().UTC().Format("2006-01-02T15-04-05"))
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	log.Printf("[Archive] exported %d log entries to %s", len(dtos), key)
	return nil
}
