package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nais/cbr-convert/internal/bigquery"
	"github.com/nais/cbr-convert/internal/cbr"
	"github.com/nais/cbr-convert/internal/currency"
)

type fakeFetcher struct {
	snapshot cbr.Snapshot
	err      error
}

func (f *fakeFetcher) Latest(_ context.Context) (cbr.Snapshot, error) {
	return f.snapshot, f.err
}

type fakeStore struct {
	newest    time.Time
	newestErr error
	insertErr error
	inserted  []bigquery.RateRow
}

func (f *fakeStore) GetNewestDate(_ context.Context) (time.Time, error) {
	return f.newest, f.newestErr
}

func (f *fakeStore) InsertRates(_ context.Context, rows []bigquery.RateRow) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rows...)
	return nil
}

func snapshot(date string) cbr.Snapshot {
	return cbr.Snapshot{
		Date:      date,
		Timestamp: time.Date(2026, time.October, 16, 8, 30, 0, 0, time.UTC),
		Base:      currency.Base,
		Rates:     currency.Rates{"USD": 0.0123, "EUR": 0.0105},
	}
}

func staticID() string { return "7f1c2a4e-0000-4000-8000-000000000001" }

func TestExport(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := &fakeStore{newest: time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)}

	err := export(context.Background(), &fakeFetcher{snapshot: snapshot("2026-10-16")}, store, logger, staticID)
	require.NoError(t, err)

	require.Len(t, store.inserted, 3)
	assert.Equal(t, "RUB", store.inserted[0].Currency)
	assert.Equal(t, "USD", store.inserted[1].Currency)
	assert.Equal(t, "EUR", store.inserted[2].Currency)
	for _, row := range store.inserted {
		assert.Equal(t, staticID(), row.ExportID)
		assert.Equal(t, "2026-10-16", row.Date)
	}

	assert.Equal(t, "exported rates", hook.LastEntry().Message)
	assert.Equal(t, 3, hook.LastEntry().Data["rows"])
}

func TestExport_EmptyTable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := &fakeStore{}

	err := export(context.Background(), &fakeFetcher{snapshot: snapshot("2026-10-16")}, store, logger, staticID)
	require.NoError(t, err)
	assert.Len(t, store.inserted, 3)
}

func TestExport_AlreadyExported(t *testing.T) {
	for _, newest := range []time.Time{
		time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC),
	} {
		logger, hook := test.NewNullLogger()
		store := &fakeStore{newest: newest}

		err := export(context.Background(), &fakeFetcher{snapshot: snapshot("2026-10-16")}, store, logger, staticID)
		require.NoError(t, err)
		assert.Empty(t, store.inserted)
		assert.Equal(t, "snapshot already exported", hook.LastEntry().Message)
	}
}

func TestExport_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		fetcher *fakeFetcher
		store   *fakeStore
		want    string
	}{
		{"fetch", &fakeFetcher{err: boom}, &fakeStore{}, "failed to get latest rates"},
		{"bad date", &fakeFetcher{snapshot: snapshot("16.10.2026")}, &fakeStore{}, "invalid snapshot date"},
		{"newest date", &fakeFetcher{snapshot: snapshot("2026-10-16")}, &fakeStore{newestErr: boom}, "failed to get newest date"},
		{"insert", &fakeFetcher{snapshot: snapshot("2026-10-16")}, &fakeStore{insertErr: boom}, "failed to insert rates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			err := export(context.Background(), tt.fetcher, tt.store, logger, staticID)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
