package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets service for board exports.
type Client struct {
	service *sheets.Service
}

// Config selects the credentials source. Exactly one of the fields must be
// set.
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

// NewClient builds an authenticated Sheets client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{service: service}, nil
}

// AppendValues appends rows after the last row of the given range.
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{Values: values}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}

// UpdateValues overwrites the given range with rows.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{Values: values}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, rng, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return err
}
