package bigquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/nais/cbr-convert/internal/cbr"
	"github.com/nais/cbr-convert/internal/currency"
)

// DateLayout is the layout of the date column.
const DateLayout = "2006-01-02"

func (c *Client) table() string {
	return "`" + c.client.Project() + "." + c.dataset + "." + c.ratesTable + "`"
}

// GetNewestDate returns the date of the newest exported snapshot, or the zero time if none.
func (c *Client) GetNewestDate(ctx context.Context) (time.Time, error) {
	var date time.Time
	q := c.client.Query("SELECT date FROM " + c.table() + " ORDER BY date DESC LIMIT 1")
	it, err := q.Read(ctx)
	if err != nil {
		return date, err
	}

	for {
		var values []bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return date, err
		}

		date, err = parseDate(values)
		if err != nil {
			return date, err
		}
	}
	return date, nil
}

// parseDate reads the date column of a result row.
func parseDate(values []bigquery.Value) (time.Time, error) {
	if len(values) == 0 {
		return time.Time{}, fmt.Errorf("newest date: empty row")
	}
	raw, ok := values[0].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("newest date: unexpected value %v (%T)", values[0], values[0])
	}
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("newest date: %w", err)
	}
	return date, nil
}

func (c *Client) InsertRates(ctx context.Context, rows []RateRow) error {
	err := c.client.Dataset(c.dataset).Table(c.ratesTable).Inserter().Put(ctx, rows)
	if err != nil {
		return fmt.Errorf("failed to insert rates: %w", err)
	}
	return nil
}

// RowsFromSnapshot flattens a snapshot into one row for the base currency
// followed by one row per currency in currency.Codes order.
func RowsFromSnapshot(snapshot cbr.Snapshot, exportID string) []RateRow {
	rows := make([]RateRow, 0, len(currency.Codes)+1)
	add := func(code currency.Code, rate float64) {
		rows = append(rows, RateRow{
			Date:      snapshot.Date,
			Published: snapshot.Timestamp,
			Base:      string(snapshot.Base),
			Currency:  string(code),
			Rate:      rate,
			ExportID:  exportID,
		})
	}

	add(snapshot.Base, 1)
	for _, code := range currency.Codes {
		if rate, ok := snapshot.Rates[code]; ok {
			add(code, rate)
		}
	}
	return rows
}
