// Package invoice imports LibreDTE-style electronic tax documents into
// Odoo as draft account moves.
package invoice

import "encoding/json"

// Code is a document type code. Source files carry these sometimes as JSON
// strings and sometimes as numbers, so it decodes from either.
type Code string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

// Document is one DTE document in the LibreDTE JSON layout.
type Document struct {
	Encabezado Encabezado  `json:"Encabezado"`
	Detalle    []Detail    `json:"Detalle"`
	Referencia []Reference `json:"Referencia,omitempty"`
}

// Encabezado is the document header.
type Encabezado struct {
	IdDoc IdDoc `json:"IdDoc"`
}

// IdDoc identifies the document type and folio.
type IdDoc struct {
	TipoDTE Code  `json:"TipoDTE"`
	Folio   int64 `json:"Folio,omitempty"`
}

// Detail is one invoice line.
type Detail struct {
	NmbItem  string  `json:"NmbItem"`
	QtyItem  float64 `json:"QtyItem"`
	PrcItem  float64 `json:"PrcItem,omitempty"`
	UnmdItem string  `json:"UnmdItem,omitempty"`
	IndExe   int     `json:"IndExe,omitempty"`
}

// Reference links the document to a previous one, e.g. the invoice a
// credit note corrects.
type Reference struct {
	TpoDocRef Code   `json:"TpoDocRef"`
	FolioRef  Code   `json:"FolioRef"`
	RazonRef  string `json:"RazonRef,omitempty"`
	CodRef    Code   `json:"CodRef,omitempty"`
}
