package cmd

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/internal/config"
	"github.com/gaze-network/public-sale/modules/publicsale"
	"github.com/gaze-network/public-sale/modules/publicsale/export"
	"github.com/gaze-network/public-sale/modules/publicsale/usecase"
	"github.com/spf13/cobra"
)

type exportPurchasersCmdOptions struct {
	Bucket string
	Prefix string
}

func NewExportPurchasersCommand() *cobra.Command {
	opts := &exportPurchasersCmdOptions{}

	cmd := &cobra.Command{
		Use:   "export-purchasers",
		Short: "Upload a parquet snapshot of the purchase ledger to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportPurchasersHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Bucket, "bucket", "", "S3 bucket to upload to. Overrides `modules.publicsale.export.s3_bucket`")
	flags.StringVar(&opts.Prefix, "prefix", "", "Object key prefix. Overrides `modules.publicsale.export.prefix`")

	return cmd
}

func exportPurchasersHandler(opts *exportPurchasersCmdOptions, cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Load().Modules.PublicSale
	if opts.Bucket != "" {
		conf.Export.S3Bucket = opts.Bucket
	}
	if opts.Prefix != "" {
		conf.Export.Prefix = opts.Prefix
	}
	if conf.Export.S3Bucket == "" {
		return errors.New("export bucket is required")
	}

	saleDg, cleanup, err := publicsale.NewDataGateway(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}
	defer cleanup()

	uc := usecase.New(saleDg, usecase.SystemClock{})
	exporter, err := export.NewS3Exporter(ctx, conf.Export, uc)
	if err != nil {
		return errors.Wrap(err, "can't create exporter")
	}

	key, err := exporter.Export(ctx, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to export purchasers")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", conf.Export.S3Bucket, key)
	return nil
}
