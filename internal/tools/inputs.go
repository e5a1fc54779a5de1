// Package tools defines the Odoo tool surface and its dispatcher.
package tools

// ListCompaniesInput is the input for odoo_list_companies. It takes no
// arguments.
type ListCompaniesInput struct{}

// SearchInput is the input for odoo_search.
type SearchInput struct {
	Company string `json:"company" jsonschema:"description=The company configuration name to use (as defined in the tenants file)"`
	Model   string `json:"model" jsonschema:"description=The Odoo model name (e.g. 'res.partner', 'account.move')"`
	Domain  []any  `json:"domain,omitempty" jsonschema:"description=Search domain as a list of criteria. Use [] for all records."`
	Limit   int    `json:"limit,omitempty" jsonschema:"description=Maximum number of IDs to return"`
	Offset  int    `json:"offset,omitempty" jsonschema:"description=Number of records to skip"`
	Order   string `json:"order,omitempty" jsonschema:"description=Sorting order (e.g. 'name asc', 'create_date desc')"`
}

// ReadInput is the input for odoo_read.
type ReadInput struct {
	Company string   `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string   `json:"model" jsonschema:"description=The Odoo model name"`
	IDs     []int64  `json:"ids" jsonschema:"description=List of record IDs to read"`
	Fields  []string `json:"fields,omitempty" jsonschema:"description=List of field names to retrieve. If not specified, returns all fields."`
}

// SearchReadInput is the input for odoo_search_read.
type SearchReadInput struct {
	Company string   `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string   `json:"model" jsonschema:"description=The Odoo model name (e.g. 'res.partner', 'account.move', 'product.product')"`
	Domain  []any    `json:"domain,omitempty" jsonschema:"description=Search domain as a list of criteria. Use [] for all records."`
	Fields  []string `json:"fields,omitempty" jsonschema:"description=List of field names to retrieve. If not specified, returns all fields."`
	Limit   int      `json:"limit,omitempty" jsonschema:"description=Maximum number of records to return"`
	Offset  int      `json:"offset,omitempty" jsonschema:"description=Number of records to skip"`
	Order   string   `json:"order,omitempty" jsonschema:"description=Sorting order (e.g. 'name asc', 'create_date desc')"`
}

// CreateInput is the input for odoo_create.
type CreateInput struct {
	Company string         `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string         `json:"model" jsonschema:"description=The Odoo model name (e.g. 'res.partner', 'account.move')"`
	Values  map[string]any `json:"values" jsonschema:"description=Dictionary of field values for the new record"`
}

// WriteInput is the input for odoo_write.
type WriteInput struct {
	Company string         `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string         `json:"model" jsonschema:"description=The Odoo model name"`
	IDs     []int64        `json:"ids" jsonschema:"description=List of record IDs to update"`
	Values  map[string]any `json:"values" jsonschema:"description=Dictionary of field values to update"`
}

// UnlinkInput is the input for odoo_unlink.
type UnlinkInput struct {
	Company string  `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string  `json:"model" jsonschema:"description=The Odoo model name"`
	IDs     []int64 `json:"ids" jsonschema:"description=List of record IDs to delete"`
}

// SearchCountInput is the input for odoo_search_count.
type SearchCountInput struct {
	Company string `json:"company" jsonschema:"description=The company configuration name to use"`
	Model   string `json:"model" jsonschema:"description=The Odoo model name"`
	Domain  []any  `json:"domain,omitempty" jsonschema:"description=Search domain as a list of criteria. Use [] for all records."`
}
