package export

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/pkg/parquetutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sliceSource []entity.Purchaser

func (l sliceSource) SnapshotPurchasers(_ context.Context, pageSize int32, fn func(offset int32, page []entity.Purchaser) error) error {
	for start := 0; start < len(l); start += int(pageSize) {
		end := min(start+int(pageSize), len(l))
		if err := fn(int32(start), l[start:end]); err != nil {
			return err
		}
	}
	return nil
}

type mockUploader struct {
	mock.Mock
	body []byte
}

func (m *mockUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.body = data
	args := m.Called(aws.ToString(input.Bucket), aws.ToString(input.Key))
	return &manager.UploadOutput{}, args.Error(0)
}

func TestCollectPurchasers(t *testing.T) {
	source := sliceSource{
		{Identity: "carol", Units: 1},
		{Identity: "alice", Units: 2},
		{Identity: "bob", Units: 5},
	}
	exporter := New(source, nil, "bucket", "prefix")
	exporter.pageSize = 2

	records, err := exporter.CollectPurchasers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []PurchaserRecord{
		{Position: 0, Identity: "carol", Units: 1},
		{Position: 1, Identity: "alice", Units: 2},
		{Position: 2, Identity: "bob", Units: 5},
	}, records)
}

func TestExport(t *testing.T) {
	source := sliceSource{
		{Identity: "carol", Units: 1},
		{Identity: "alice", Units: 2},
	}
	at := time.Unix(1700000000, 0)

	t.Run("uploads_parquet", func(t *testing.T) {
		uploader := &mockUploader{}
		uploader.On("Upload", "bucket", "exports/purchasers-1700000000.parquet").Return(nil).Once()

		key, err := New(source, uploader, "bucket", "exports").Export(context.Background(), at)
		require.NoError(t, err)
		assert.Equal(t, "exports/purchasers-1700000000.parquet", key)
		uploader.AssertExpectations(t)

		records, err := parquetutils.ReadAll[PurchaserRecord](parquetutils.NewBufferFrom(uploader.body))
		require.NoError(t, err)
		assert.Equal(t, []PurchaserRecord{
			{Position: 0, Identity: "carol", Units: 1},
			{Position: 1, Identity: "alice", Units: 2},
		}, records)
	})
	t.Run("upload_error", func(t *testing.T) {
		uploader := &mockUploader{}
		uploader.On("Upload", "bucket", "purchasers-1700000000.parquet").Return(errors.New("denied")).Once()

		_, err := New(source, uploader, "bucket", "").Export(context.Background(), at)
		assert.Error(t, err)
		uploader.AssertExpectations(t)
	})
}

func TestCollectPurchasersUnitsOverflow(t *testing.T) {
	source := sliceSource{
		{Identity: "carol", Units: 1},
		{Identity: "alice", Units: math.MaxInt64 + 1},
	}

	_, err := New(source, nil, "bucket", "").CollectPurchasers(context.Background())
	assert.True(t, errors.Is(err, errs.OverflowUint64), "got %v", err)
}
