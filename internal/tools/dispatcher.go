package tools

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bmya/odoo-gateway/internal/core/cache"
	"github.com/bmya/odoo-gateway/internal/domain/errors"
	"github.com/bmya/odoo-gateway/internal/odoo"
)

// Info describes one tool for listing.
type Info struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// tool binds a definition to its handler.
type tool struct {
	info     Info
	schema   *jsonschema.Schema
	readOnly bool
	run      func(ctx context.Context, args json.RawMessage) (string, error)
}

// DispatcherConfig holds the dependencies for a Dispatcher.
type DispatcherConfig struct {
	Registry *odoo.Registry
	// Cache stores rendered read-only tool results; nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *zerolog.Logger
}

// Dispatcher resolves a tool name plus JSON arguments to an Odoo operation
// on the matching tenant's client and renders the result as text. Every
// failure it returns is a classified gateway error.
type Dispatcher struct {
	registry *odoo.Registry
	cache    cache.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
	tools    map[string]*tool
	order    []string
}

// NewDispatcher creates a dispatcher over the given tenant registry and
// registers the Odoo tool set.
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, errors.NewConfigurationError("tenant registry is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	d := &Dispatcher{
		registry: cfg.Registry,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
		tools:    make(map[string]*tool),
	}

	if err := d.registerAll(); err != nil {
		return nil, err
	}
	return d, nil
}

// Tools returns the tool definitions in registration order.
func (d *Dispatcher) Tools() []Info {
	infos := make([]Info, 0, len(d.order))
	for _, name := range d.order {
		infos = append(infos, d.tools[name].info)
	}
	return infos
}

// Dispatch validates the arguments against the tool's input schema, invokes
// the tool, and returns the rendered text result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := d.tools[name]
	if !ok {
		return "", errors.NewValidationError(fmt.Sprintf("unknown tool: %s", name), nil)
	}

	if err := validateArgs(t.schema, args); err != nil {
		return "", errors.NewValidationError(fmt.Sprintf("invalid arguments for %s", name), err)
	}

	if t.readOnly && d.cache != nil {
		key := cacheKey(name, args)
		if cached, err := d.cache.Get(ctx, key); err != nil {
			d.logger.Warn().Err(err).Str("tool", name).Msg("cache lookup failed")
		} else if cached != nil {
			d.logger.Debug().Str("tool", name).Msg("tool result served from cache")
			return string(cached), nil
		}

		result, err := t.run(ctx, args)
		if err != nil {
			return "", err
		}
		if err := d.cache.Set(ctx, key, []byte(result), d.cacheTTL); err != nil {
			d.logger.Warn().Err(err).Str("tool", name).Msg("cache store failed")
		}
		return result, nil
	}

	return t.run(ctx, args)
}

// register adds one tool, reflecting and compiling its input schema.
func (d *Dispatcher) register(name, description string, input any, readOnly bool, run func(ctx context.Context, args json.RawMessage) (string, error)) error {
	raw, err := generateSchema(input)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("cannot build schema for %s: %v", name, err))
	}
	compiled, err := compileSchema(name, raw)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("cannot compile schema for %s: %v", name, err))
	}

	d.tools[name] = &tool{
		info:     Info{Name: name, Description: description, InputSchema: raw},
		schema:   compiled,
		readOnly: readOnly,
		run:      run,
	}
	d.order = append(d.order, name)
	return nil
}

func (d *Dispatcher) registerAll() error {
	regs := []struct {
		name, description string
		input             any
		readOnly          bool
		run               func(ctx context.Context, args json.RawMessage) (string, error)
	}{
		{
			"odoo_list_companies",
			"List all available company configurations",
			ListCompaniesInput{}, false, d.listCompanies,
		},
		{
			"odoo_search_read",
			"Search and read records from an Odoo model. Combines search and read operations.",
			SearchReadInput{}, true, d.searchRead,
		},
		{
			"odoo_create",
			"Create a new record in an Odoo model",
			CreateInput{}, false, d.create,
		},
		{
			"odoo_write",
			"Update existing records in an Odoo model",
			WriteInput{}, false, d.write,
		},
		{
			"odoo_unlink",
			"Delete records from an Odoo model",
			UnlinkInput{}, false, d.unlink,
		},
		{
			"odoo_search",
			"Search for record IDs matching criteria (without reading full records)",
			SearchInput{}, true, d.search,
		},
		{
			"odoo_read",
			"Read specific records by their IDs",
			ReadInput{}, true, d.read,
		},
		{
			"odoo_search_count",
			"Count the number of records matching search criteria",
			SearchCountInput{}, true, d.searchCount,
		},
	}

	for _, r := range regs {
		if err := d.register(r.name, r.description, r.input, r.readOnly, r.run); err != nil {
			return err
		}
	}
	return nil
}

// --- Tool handlers ---

func (d *Dispatcher) listCompanies(ctx context.Context, args json.RawMessage) (string, error) {
	companies := d.registry.Tenants()
	return fmt.Sprintf("Available companies: %s\n\nTotal: %d",
		strings.Join(companies, ", "), len(companies)), nil
}

func (d *Dispatcher) search(ctx context.Context, args json.RawMessage) (string, error) {
	var in SearchInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_search", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	ids, err := client.Search(ctx, in.Model, domainOrEmpty(in.Domain), &odoo.SearchOptions{
		Limit:  in.Limit,
		Offset: in.Offset,
		Order:  in.Order,
	})
	if err != nil {
		return "", err
	}
	return renderJSON(ids)
}

func (d *Dispatcher) read(ctx context.Context, args json.RawMessage) (string, error) {
	var in ReadInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_read", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	records, err := client.Read(ctx, in.Model, in.IDs, in.Fields)
	if err != nil {
		return "", err
	}
	return renderJSON(records)
}

func (d *Dispatcher) searchRead(ctx context.Context, args json.RawMessage) (string, error) {
	var in SearchReadInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_search_read", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	records, err := client.SearchRead(ctx, in.Model, domainOrEmpty(in.Domain), &odoo.SearchOptions{
		Fields: in.Fields,
		Limit:  in.Limit,
		Offset: in.Offset,
		Order:  in.Order,
	})
	if err != nil {
		return "", err
	}
	return renderJSON(records)
}

func (d *Dispatcher) create(ctx context.Context, args json.RawMessage) (string, error) {
	var in CreateInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_create", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	id, err := client.Create(ctx, in.Model, in.Values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created record with ID: %d", id), nil
}

func (d *Dispatcher) write(ctx context.Context, args json.RawMessage) (string, error) {
	var in WriteInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_write", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	ok, err := client.Write(ctx, in.Model, in.IDs, in.Values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated successfully: %t", ok), nil
}

func (d *Dispatcher) unlink(ctx context.Context, args json.RawMessage) (string, error) {
	var in UnlinkInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_unlink", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	ok, err := client.Unlink(ctx, in.Model, in.IDs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted successfully: %t", ok), nil
}

func (d *Dispatcher) searchCount(ctx context.Context, args json.RawMessage) (string, error) {
	var in SearchCountInput
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.NewValidationError("invalid arguments for odoo_search_count", err)
	}

	client, err := d.registry.Client(in.Company)
	if err != nil {
		return "", err
	}

	count, err := client.SearchCount(ctx, in.Model, domainOrEmpty(in.Domain))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Count: %d", count), nil
}

// --- Helpers ---

// domainOrEmpty substitutes an empty domain (match all records) for an
// omitted one, so the request body carries [] rather than null.
func domainOrEmpty(domain []any) odoo.Domain {
	if domain == nil {
		return odoo.Domain{}
	}
	return domain
}

func renderJSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.NewDecodeError(err)
	}
	return string(out), nil
}

// cacheKey digests the tool name and raw arguments; the arguments include
// the company label, so keys never collide across tenants.
func cacheKey(name string, args json.RawMessage) string {
	sum := sha256.Sum256(append([]byte(name+"\x00"), args...))
	return fmt.Sprintf("tools:%x", sum)
}
