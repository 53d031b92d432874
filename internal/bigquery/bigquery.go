package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
)

type Client struct {
	client     *bigquery.Client
	dataset    string
	ratesTable string
}

func New(ctx context.Context, projectID, location, dataset, ratesTable string) (*Client, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	client.Location = location
	return &Client{
		client:     client,
		dataset:    dataset,
		ratesTable: ratesTable,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) CreateTableIfNotExists(ctx context.Context, schema any, tableName string) error {
	exists, err := c.tableExists(ctx, tableName)
	if err != nil {
		return fmt.Errorf("failed to check if table exists: %w", err)
	}
	if exists {
		return nil
	}

	return c.createTable(ctx, schema, tableName)
}

func (c *Client) createTable(ctx context.Context, schema any, tableName string) error {
	s, err := bigquery.InferSchema(schema)
	if err != nil {
		return fmt.Errorf("failed to infer schema: %w", err)
	}

	if err := c.client.Dataset(c.dataset).Table(tableName).Create(ctx, &bigquery.TableMetadata{Schema: s}); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// tableExists checks wheter a table exists on a given dataset.
func (c *Client) tableExists(ctx context.Context, tableName string) (bool, error) {
	tableRef := c.client.Dataset(c.dataset).Table(tableName)
	if _, err := tableRef.Metadata(ctx); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func isNotFound(err error) bool {
	var e *googleapi.Error
	return errors.As(err, &e) && e.Code == http.StatusNotFound
}
