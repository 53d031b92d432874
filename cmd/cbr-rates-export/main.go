package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nais/cbr-convert/internal/bigquery"
	"github.com/nais/cbr-convert/internal/cbr"
	"github.com/nais/cbr-convert/internal/config"
	"github.com/nais/cbr-convert/internal/log"
)

const (
	exitCodeOK = iota
	exitCodeConfigError
	exitCodeLoggerError
	exitCodeRunError
)

type snapshotFetcher interface {
	Latest(ctx context.Context) (cbr.Snapshot, error)
}

type rateStore interface {
	GetNewestDate(ctx context.Context) (time.Time, error)
	InsertRates(ctx context.Context, rows []bigquery.RateRow) error
}

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Println("failed to create config")
		os.Exit(exitCodeConfigError)
	}

	logger, err := log.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Println("unable to create logger")
		os.Exit(exitCodeLoggerError)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("error in run()")
		os.Exit(exitCodeRunError)
	}

	os.Exit(exitCodeOK)
}

func run(cfg *config.Config, logger logrus.FieldLogger) error {
	ctx := context.Background()

	bqClient, err := bigquery.New(ctx, cfg.BigQuery.ProjectID, cfg.BigQuery.Location, cfg.BigQuery.Dataset, cfg.BigQuery.RatesTable)
	if err != nil {
		return fmt.Errorf("failed to create bigquery client: %w", err)
	}
	defer bqClient.Close()

	err = bqClient.CreateTableIfNotExists(ctx, bigquery.RateRow{}, cfg.BigQuery.RatesTable)
	if err != nil {
		return fmt.Errorf("failed creating rates table: %w", err)
	}

	return export(ctx, cbr.New(), bqClient, logger, uuid.NewString)
}

// export stores the latest snapshot unless a snapshot for the same or a later date is already stored.
func export(ctx context.Context, fetcher snapshotFetcher, store rateStore, logger logrus.FieldLogger, newID func() string) error {
	snapshot, err := fetcher.Latest(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest rates: %w", err)
	}

	snapshotDate, err := time.Parse(bigquery.DateLayout, snapshot.Date)
	if err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", snapshot.Date, err)
	}

	newestDate, err := store.GetNewestDate(ctx)
	if err != nil {
		return fmt.Errorf("failed to get newest date: %w", err)
	}

	if !newestDate.IsZero() && !newestDate.Before(snapshotDate) {
		logger.WithFields(logrus.Fields{
			"snapshot_date": snapshot.Date,
			"newest_date":   newestDate.Format(bigquery.DateLayout),
		}).Info("snapshot already exported")
		return nil
	}

	exportID := newID()
	rows := bigquery.RowsFromSnapshot(snapshot, exportID)
	if err := store.InsertRates(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert rates: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"snapshot_date": snapshot.Date,
		"export_id":     exportID,
		"rows":          len(rows),
	}).Info("exported rates")
	return nil
}
