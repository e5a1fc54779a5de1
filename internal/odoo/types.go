// Package odoo provides the client for the Odoo External JSON-2 API.
package odoo

// Record is a single remote record, mapping field name to value.
type Record = map[string]any

// Domain is a search domain: a list of match criteria in Odoo's triplet
// notation, e.g. [["name", "=", "John"]]. An empty domain matches all
// records.
type Domain = []any

// SearchOptions holds the optional arguments of the search-style operations.
// Zero-valued fields are omitted from the request body.
type SearchOptions struct {
	Fields []string
	Limit  int
	Offset int
	Order  string
}

// apply merges the set options into the request payload. Omitted options
// never appear as keys, they are absent rather than null or empty.
func (o *SearchOptions) apply(payload map[string]any, withFields bool) {
	if o == nil {
		return
	}
	if withFields && len(o.Fields) > 0 {
		payload["fields"] = o.Fields
	}
	if o.Limit > 0 {
		payload["limit"] = o.Limit
	}
	if o.Offset > 0 {
		payload["offset"] = o.Offset
	}
	if o.Order != "" {
		payload["order"] = o.Order
	}
}
