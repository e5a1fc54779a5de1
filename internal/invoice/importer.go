package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
	"github.com/bmya/odoo-gateway/internal/odoo"
)

// lookupLimit caps the preloaded lookup tables.
const lookupLimit = 100

// defaultUOMName must exist in the target database; it is the unit of
// measure applied to lines that name no UOM of their own.
const defaultUOMName = "Unit"

// refundCodes are the document type codes booked as credit notes.
var refundCodes = map[Code]bool{
	"61":  true,
	"112": true,
}

// Config holds the dependencies for an Importer.
type Config struct {
	Client *odoo.Client
	// PartnerID is the customer every created move is billed to.
	PartnerID int64
	Logger    *zerolog.Logger
}

// Importer creates draft account moves from DTE documents. Prepare must be
// called once before Run to load the lookup tables.
type Importer struct {
	client    *odoo.Client
	partnerID int64
	logger    zerolog.Logger

	docTypeByCode map[Code]int64
	uomByName     map[string]int64
	defaultUOMID  int64
	journalID     int64
}

// Result summarizes one import run.
type Result struct {
	CreatedIDs []int64
	Skipped    int
}

// NewImporter creates an importer over the given client.
func NewImporter(cfg Config) (*Importer, error) {
	if cfg.Client == nil {
		return nil, errors.NewConfigurationError("odoo client is required")
	}
	if cfg.PartnerID <= 0 {
		return nil, errors.NewConfigurationError("partner id is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Importer{
		client:    cfg.Client,
		partnerID: cfg.PartnerID,
		logger:    logger,
	}, nil
}

// LoadDocuments reads a JSON array of DTE documents from a file.
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("cannot read documents file: %v", err))
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid documents file %s", path), err)
	}
	return docs, nil
}

// Prepare loads the document type, UOM, and journal lookup tables.
func (i *Importer) Prepare(ctx context.Context) error {
	docTypes, err := i.client.SearchRead(ctx, "l10n_latam.document.type", odoo.Domain{}, &odoo.SearchOptions{
		Fields: []string{"id", "code"},
		Limit:  lookupLimit,
	})
	if err != nil {
		return err
	}
	i.docTypeByCode = make(map[Code]int64, len(docTypes))
	for _, rec := range docTypes {
		id, ok := recordID(rec)
		code, haveCode := rec["code"].(string)
		if !ok || !haveCode {
			continue
		}
		i.docTypeByCode[Code(code)] = id
	}

	uoms, err := i.client.SearchRead(ctx, "uom.uom", odoo.Domain{}, &odoo.SearchOptions{
		Fields: []string{"id", "display_name"},
		Limit:  lookupLimit,
	})
	if err != nil {
		return err
	}
	i.uomByName = make(map[string]int64, len(uoms))
	for _, rec := range uoms {
		id, ok := recordID(rec)
		name, haveName := rec["display_name"].(string)
		if !ok || !haveName {
			continue
		}
		i.uomByName[name] = id
	}
	defaultID, ok := i.uomByName[defaultUOMName]
	if !ok {
		return errors.NewConfigurationError(fmt.Sprintf("default UOM %q not found", defaultUOMName))
	}
	i.defaultUOMID = defaultID

	journals, err := i.client.SearchRead(ctx, "account.journal", odoo.Domain{
		[]any{"type", "=", "sale"},
		[]any{"l10n_latam_use_documents", "=", true},
	}, &odoo.SearchOptions{
		Fields: []string{"id"},
		Limit:  1,
	})
	if err != nil {
		return err
	}
	if len(journals) == 0 {
		return errors.NewConfigurationError("no sales journal with latam documents found")
	}
	journalID, ok := recordID(journals[0])
	if !ok {
		return errors.NewConfigurationError("sales journal record has no id")
	}
	i.journalID = journalID

	i.logger.Info().
		Int("document_types", len(i.docTypeByCode)).
		Int("uoms", len(i.uomByName)).
		Int64("journal_id", i.journalID).
		Msg("lookup tables loaded")
	return nil
}

// Run creates one draft account move per document. Documents with an
// unknown type code are skipped, not failed.
func (i *Importer) Run(ctx context.Context, docs []Document) (*Result, error) {
	result := &Result{}

	for _, doc := range docs {
		values, ok := i.buildMove(doc)
		if !ok {
			i.logger.Warn().
				Str("tipo_dte", string(doc.Encabezado.IdDoc.TipoDTE)).
				Msg("skipping document with unknown type code")
			result.Skipped++
			continue
		}

		id, err := i.client.Create(ctx, "account.move", values)
		if err != nil {
			return result, err
		}

		i.logger.Info().
			Int64("move_id", id).
			Str("tipo_dte", string(doc.Encabezado.IdDoc.TipoDTE)).
			Msg("created draft move")
		result.CreatedIDs = append(result.CreatedIDs, id)
	}

	return result, nil
}

// buildMove maps one document to account.move create values. The second
// return is false when the document type code has no match in Odoo.
func (i *Importer) buildMove(doc Document) (odoo.Record, bool) {
	tipoDTE := doc.Encabezado.IdDoc.TipoDTE
	docTypeID, ok := i.docTypeByCode[tipoDTE]
	if !ok {
		return nil, false
	}

	moveType := "out_invoice"
	if refundCodes[tipoDTE] {
		moveType = "out_refund"
	}

	lines := make([]any, 0, len(doc.Detalle))
	for _, det := range doc.Detalle {
		lineVals := odoo.Record{
			"name":           det.NmbItem,
			"quantity":       det.QtyItem,
			"price_unit":     det.PrcItem,
			"product_uom_id": i.defaultUOMID,
		}
		if det.UnmdItem != "" {
			if uomID, found := i.uomByName[det.UnmdItem]; found {
				lineVals["product_uom_id"] = uomID
			}
		}
		if det.IndExe != 0 {
			lineVals["tax_ids"] = []any{}
		}
		lines = append(lines, []any{0, 0, lineVals})
	}

	refs := make([]any, 0, len(doc.Referencia))
	for _, ref := range doc.Referencia {
		refDocTypeID, found := i.docTypeByCode[ref.TpoDocRef]
		if !found {
			continue
		}
		refVals := odoo.Record{
			"l10n_cl_reference_doc_type_id": refDocTypeID,
			"origin_doc_number":             string(ref.FolioRef),
			"reason":                        ref.RazonRef,
		}
		if ref.CodRef != "" {
			refVals["reference_doc_code"] = string(ref.CodRef)
		}
		refs = append(refs, []any{0, 0, refVals})
	}

	return odoo.Record{
		"partner_id":                  i.partnerID,
		"journal_id":                  i.journalID,
		"move_type":                   moveType,
		"l10n_latam_document_type_id": docTypeID,
		"invoice_line_ids":            lines,
		"l10n_cl_reference_ids":       refs,
	}, true
}

// recordID extracts the integer id from a decoded record. JSON numbers
// arrive as float64.
func recordID(rec odoo.Record) (int64, bool) {
	switch v := rec["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}
