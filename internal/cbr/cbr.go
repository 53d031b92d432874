package cbr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nais/cbr-convert/internal/currency"
)

const latestURL = "https://www.cbr-xml-daily.ru/latest.js"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingRate      = errors.New("missing rate")
	ErrInvalidRate      = errors.New("invalid rate")
)

type Client struct {
	client *http.Client
	apiURL string
}

func New() *Client {
	return &Client{
		client: http.DefaultClient,
		apiURL: latestURL,
	}
}

func (c *Client) do(ctx context.Context, v any, method, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) fetch(ctx context.Context) (latestResponse, error) {
	ret := latestResponse{}
	if err := c.do(ctx, &ret, http.MethodGet, c.apiURL, nil); err != nil {
		return latestResponse{}, fmt.Errorf("failed to get latest rates: %w", err)
	}
	return ret, nil
}

// Latest fetches today's snapshot. Every currency in currency.Codes must be
// present as a number; other keys are ignored.
func (c *Client) Latest(ctx context.Context) (Snapshot, error) {
	ret, err := c.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	rates, err := decodeRates(ret.Rates)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Date:      ret.date(),
		Timestamp: ret.timestamp(),
		Base:      ret.base(),
		Rates:     rates,
	}, nil
}

// Rates returns the rate table of the latest snapshot. Only the rates object is decoded.
func (c *Client) Rates(ctx context.Context) (currency.Rates, error) {
	ret, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return decodeRates(ret.Rates)
}

func decodeRates(raw map[string]json.RawMessage) (currency.Rates, error) {
	rates := make(currency.Rates, len(currency.Codes))
	for _, code := range currency.Codes {
		value, ok := raw[string(code)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingRate, code)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("%w: %s: null", ErrInvalidRate, code)
		}
		var rate float64
		if err := json.Unmarshal(value, &rate); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRate, code, err)
		}
		rates[code] = rate
	}
	return rates, nil
}
