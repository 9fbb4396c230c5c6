// Package export snapshots the purchase ledger into a parquet file and uploads it to S3.
package export

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	publicsaleconfig "github.com/gaze-network/public-sale/modules/publicsale/config"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gaze-network/public-sale/pkg/parquetutils"
)

const (
	defaultPageSize = 1000
	contentType     = "application/vnd.apache.parquet"
)

// PurchaserRecord is a parquet row of the purchase ledger.
type PurchaserRecord struct {
	Position int64  `parquet:"name=position, type=INT64"`
	Identity string `parquet:"name=identity, type=BYTE_ARRAY, convertedtype=UTF8"`
	Units    int64  `parquet:"name=units, type=INT64"`
}

// PurchaserSource reads the ledger page by page from a single point in time.
type PurchaserSource interface {
	SnapshotPurchasers(ctx context.Context, pageSize int32, fn func(offset int32, page []entity.Purchaser) error) error
}

// Uploader is implemented by *manager.Uploader.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type Exporter struct {
	source   PurchaserSource
	uploader Uploader
	bucket   string
	prefix   string
	pageSize int32
}

func New(source PurchaserSource, uploader Uploader, bucket string, prefix string) *Exporter {
	return &Exporter{
		source:   source,
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
		pageSize: defaultPageSize,
	}
}

// NewS3Exporter uploads with the default AWS credential chain.
func NewS3Exporter(ctx context.Context, conf publicsaleconfig.ExportConfig, source PurchaserSource) (*Exporter, error) {
	if conf.S3Bucket == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "export s3 bucket is required")
	}
	opts := []func(*config.LoadOptions) error{}
	if conf.Region != "" {
		opts = append(opts, config.WithRegion(conf.Region))
	}
	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}
	uploader := manager.NewUploader(s3.NewFromConfig(sdkConfig))
	return New(source, uploader, conf.S3Bucket, conf.Prefix), nil
}

// CollectPurchasers reads the whole ledger in insertion order.
func (e *Exporter) CollectPurchasers(ctx context.Context) ([]PurchaserRecord, error) {
	records := make([]PurchaserRecord, 0)
	err := e.source.SnapshotPurchasers(ctx, e.pageSize, func(offset int32, page []entity.Purchaser) error {
		for i, p := range page {
			if p.Units > math.MaxInt64 {
				return errors.Wrapf(errs.OverflowUint64, "units of %s do not fit the int64 column", p.Identity)
			}
			records = append(records, PurchaserRecord{
				Position: int64(offset) + int64(i),
				Identity: p.Identity,
				Units:    int64(p.Units),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read purchasers")
	}
	return records, nil
}

// Export writes the ledger snapshot and returns the object key.
func (e *Exporter) Export(ctx context.Context, at time.Time) (string, error) {
	records, err := e.CollectPurchasers(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}

	buffer := parquetutils.NewBuffer()
	if err := parquetutils.WriteAll(buffer, records); err != nil {
		return "", errors.Wrap(err, "failed to encode purchasers")
	}

	key := path.Join(e.prefix, fmt.Sprintf("purchasers-%d.parquet", at.Unix()))
	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to upload %s", key)
	}

	logger.InfoContext(ctx, "Exported purchasers",
		slogx.String("bucket", e.bucket),
		slogx.String("key", key),
		slogx.Int("purchasers", len(records)),
	)
	return key, nil
}
