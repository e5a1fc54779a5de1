package odoo

import (
	"context"
	"encoding/json"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

// Search returns the ids of records matching the domain.
func (c *Client) Search(ctx context.Context, model string, domain Domain, opts *SearchOptions) ([]int64, error) {
	payload := map[string]any{"domain": domain}
	opts.apply(payload, false)

	raw, err := c.call(ctx, model, "search", payload)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, errors.NewDecodeError(err)
	}
	return ids, nil
}

// Read returns the requested records by id. When fields is empty all fields
// are returned.
func (c *Client) Read(ctx context.Context, model string, ids []int64, fields []string) ([]Record, error) {
	payload := map[string]any{"ids": ids}
	if len(fields) > 0 {
		payload["fields"] = fields
	}

	raw, err := c.call(ctx, model, "read", payload)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.NewDecodeError(err)
	}
	return records, nil
}

// SearchRead searches for records matching the domain and reads them in one
// call.
func (c *Client) SearchRead(ctx context.Context, model string, domain Domain, opts *SearchOptions) ([]Record, error) {
	payload := map[string]any{"domain": domain}
	opts.apply(payload, true)

	raw, err := c.call(ctx, model, "search_read", payload)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.NewDecodeError(err)
	}
	return records, nil
}

// Create creates a new record and returns its id.
func (c *Client) Create(ctx context.Context, model string, values Record) (int64, error) {
	raw, err := c.call(ctx, model, "create", map[string]any{"values": values})
	if err != nil {
		return 0, err
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, errors.NewDecodeError(err)
	}
	return id, nil
}

// Write updates the given records with the field values.
func (c *Client) Write(ctx context.Context, model string, ids []int64, values Record) (bool, error) {
	raw, err := c.call(ctx, model, "write", map[string]any{"ids": ids, "values": values})
	if err != nil {
		return false, err
	}

	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return false, errors.NewDecodeError(err)
	}
	return ok, nil
}

// Unlink deletes the given records.
func (c *Client) Unlink(ctx context.Context, model string, ids []int64) (bool, error) {
	raw, err := c.call(ctx, model, "unlink", map[string]any{"ids": ids})
	if err != nil {
		return false, err
	}

	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return false, errors.NewDecodeError(err)
	}
	return ok, nil
}

// SearchCount returns the number of records matching the domain.
func (c *Client) SearchCount(ctx context.Context, model string, domain Domain) (int64, error) {
	raw, err := c.call(ctx, model, "search_count", map[string]any{"domain": domain})
	if err != nil {
		return 0, err
	}

	var count int64
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, errors.NewDecodeError(err)
	}
	return count, nil
}
