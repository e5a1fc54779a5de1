// Package gallery renders company contacts and their logos into a static
// HTML gallery.
package gallery

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
	"github.com/bmya/odoo-gateway/internal/odoo"
)

const (
	// DefaultMaxSize is the thumbnail bounding box in pixels.
	DefaultMaxSize = 100
	// DefaultLimit caps how many contacts are fetched.
	DefaultLimit = 50

	// maxNameInFilename truncates the contact name used in filenames.
	maxNameInFilename = 30

	imagesSubdir = "images"
	galleryFile  = "gallery.html"
)

// Config holds the dependencies for a Processor.
type Config struct {
	Client *odoo.Client
	// OutputDir receives the gallery.html and an images/ subdirectory.
	OutputDir string
	MaxSize   int
	Limit     int
	Logger    *zerolog.Logger
}

// Processor fetches company contacts with images, thumbnails them, and
// writes a static gallery.
type Processor struct {
	client    *odoo.Client
	outputDir string
	maxSize   int
	limit     int
	logger    zerolog.Logger
}

// Contact is one gallery entry.
type Contact struct {
	ID    int64
	Name  string
	VAT   string
	Email string
	// ImageFile is the thumbnail path relative to the output directory,
	// empty when no image could be saved.
	ImageFile string
}

// Result summarizes one gallery run.
type Result struct {
	Saved       int
	Skipped     int
	GalleryPath string
}

// NewProcessor creates a gallery processor.
func NewProcessor(cfg Config) (*Processor, error) {
	if cfg.Client == nil {
		return nil, errors.NewConfigurationError("odoo client is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.NewConfigurationError("output directory is required")
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Processor{
		client:    cfg.Client,
		outputDir: cfg.OutputDir,
		maxSize:   maxSize,
		limit:     limit,
		logger:    logger,
	}, nil
}

// Run fetches the contacts, writes the thumbnails, and renders the
// gallery. Contacts whose image cannot be processed are skipped.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	records, err := p.client.SearchRead(ctx, "res.partner", odoo.Domain{
		[]any{"is_company", "=", true},
		[]any{"image_1920", "!=", false},
	}, &odoo.SearchOptions{
		Fields: []string{"name", "image_1920", "vat", "email"},
		Limit:  p.limit,
		Order:  "name asc",
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("contacts", len(records)).Msg("contacts fetched")

	imagesDir := filepath.Join(p.outputDir, imagesSubdir)
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("cannot create output directory: %v", err))
	}

	result := &Result{}
	contacts := make([]Contact, 0, len(records))

	for _, rec := range records {
		contact := contactFromRecord(rec)

		encoded, _ := rec["image_1920"].(string)
		if encoded == "" {
			p.logger.Warn().Int64("contact_id", contact.ID).Str("name", contact.Name).Msg("contact has no image")
			result.Skipped++
			contacts = append(contacts, contact)
			continue
		}

		filename := imageFilename(contact.ID, contact.Name)
		if err := p.saveThumbnail(encoded, filepath.Join(imagesDir, filename)); err != nil {
			p.logger.Warn().Err(err).Int64("contact_id", contact.ID).Str("name", contact.Name).Msg("image processing failed")
			result.Skipped++
			contacts = append(contacts, contact)
			continue
		}

		contact.ImageFile = imagesSubdir + "/" + filename
		contacts = append(contacts, contact)
		result.Saved++
	}

	galleryPath := filepath.Join(p.outputDir, galleryFile)
	if err := renderGallery(galleryPath, contacts); err != nil {
		return nil, err
	}
	result.GalleryPath = galleryPath

	p.logger.Info().
		Int("saved", result.Saved).
		Int("skipped", result.Skipped).
		Str("gallery", galleryPath).
		Msg("gallery written")
	return result, nil
}

// saveThumbnail decodes the base64 image, shrinks it to fit the bounding
// box, and writes an optimized PNG.
func (p *Processor) saveThumbnail(encoded, path string) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("invalid base64 image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot decode image: %w", err)
	}

	thumb := imaging.Fit(img, p.maxSize, p.maxSize, imaging.Lanczos)
	if err := imaging.Save(thumb, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("cannot save thumbnail: %w", err)
	}
	return nil
}

// contactFromRecord maps a res.partner record. Odoo returns false for
// unset char fields, so vat and email need a type check.
func contactFromRecord(rec odoo.Record) Contact {
	contact := Contact{
		Name:  stringField(rec, "name"),
		VAT:   stringField(rec, "vat"),
		Email: stringField(rec, "email"),
	}
	if id, ok := rec["id"].(float64); ok {
		contact.ID = int64(id)
	}
	return contact
}

func stringField(rec odoo.Record, field string) string {
	s, _ := rec[field].(string)
	return s
}

// imageFilename builds a sanitized thumbnail filename from the contact id
// and a truncated contact name.
func imageFilename(id int64, name string) string {
	runes := []rune(name)
	if len(runes) > maxNameInFilename {
		runes = runes[:maxNameInFilename]
	}

	raw := fmt.Sprintf("contact_%d_%s.png", id, string(runes))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
