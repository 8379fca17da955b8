package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
	"github.com/vietcraft/storefront/internal/server/config"
)

// S3Store keeps the canonical snapshot in an S3-compatible bucket (MinIO in
// development). Same contract as FileStore: object keys mirror the file
// names, and backups are rotated on every write.
type S3Store struct {
	client *s3.Client
	bucket string
	keep   int
	log    logging.Logger
}

var _ SnapshotStore = (*S3Store)(nil)

// NewS3Store builds the client from static credentials and an explicit base
// endpoint, path-style so MinIO works out of the box.
func NewS3Store(ctx context.Context, cfg *config.Config, log logging.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	keep := cfg.BackupKeep
	if keep <= 0 {
		keep = DefaultBackupKeep
	}
	return &S3Store{client: client, bucket: cfg.S3Bucket, keep: keep, log: log}, nil
}

// Read fetches the canonical object; a missing key yields defaults. Other
// errors surface to the caller since they usually mean the bucket is
// misconfigured rather than empty.
func (s *S3Store) Read(ctx context.Context) (catalog.Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(canonicalName),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return catalog.DefaultSnapshot(), nil
		}
		return catalog.Snapshot{}, fmt.Errorf("fetching canonical snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("reading canonical snapshot: %w", err)
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn(ctx, "canonical snapshot corrupt, serving defaults", "err", err)
		return catalog.DefaultSnapshot(), nil
	}
	return snap, nil
}

// Write uploads the canonical object and a timestamped backup, then rotates
// old backups. S3 object replacement is atomic per key, so no temp object
// dance is needed. Backup failures are logged but do not fail the write.
func (s *S3Store) Write(ctx context.Context, snap catalog.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(canonicalName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("uploading canonical snapshot: %w", err)
	}

	backup := fmt.Sprintf("%s%d%s", backupPrefix, time.Now().UnixMilli(), backupSuffix)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(backup),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.log.Warn(ctx, "backup upload failed", "err", err)
		return nil
	}
	if err := s.rotateBackups(ctx); err != nil {
		s.log.Warn(ctx, "backup rotation failed", "err", err)
	}
	return nil
}

func (s *S3Store) rotateBackups(ctx context.Context) error {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(backupPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, backupSuffix) {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) <= s.keep {
		return nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys[s.keep:] {
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return err
		}
	}
	return nil
}
