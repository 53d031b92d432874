package bigquery

import "time"

type RateRow struct {
	Date      string    `bigquery:"date"`
	Published time.Time `bigquery:"published"`
	Base      string    `bigquery:"base"`
	Currency  string    `bigquery:"currency"`
	Rate      float64   `bigquery:"rate"`
	ExportID  string    `bigquery:"export_id"`
}
