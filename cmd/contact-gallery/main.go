// Package main renders company contacts and their logos into a static
// HTML gallery.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bmya/odoo-gateway/internal/config"
	"github.com/bmya/odoo-gateway/internal/gallery"
	"github.com/bmya/odoo-gateway/internal/odoo"
)

func main() {
	var (
		company   = flag.String("company", "", "company configuration name from the tenants file")
		outputDir = flag.String("output", "output/contact_images", "directory for the gallery and thumbnails")
		maxSize   = flag.Int("size", gallery.DefaultMaxSize, "thumbnail bounding box in pixels")
		limit     = flag.Int("limit", gallery.DefaultLimit, "maximum number of contacts to fetch")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *company == "" {
		log.Fatal().Msg("-company is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	tenants, err := config.LoadTenants(cfg.Odoo.TenantsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tenant configurations")
	}

	tenant, ok := tenants[*company]
	if !ok {
		log.Fatal().Str("company", *company).Msg("company not found in tenants file")
	}

	client, err := odoo.NewClient(odoo.ClientConfig{
		URL:        tenant.URL,
		Database:   tenant.Database,
		APIKey:     tenant.APIKey,
		Timeout:    cfg.Odoo.Timeout,
		MaxRetries: cfg.Odoo.MaxRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	processor, err := gallery.NewProcessor(gallery.Config{
		Client:    client,
		OutputDir: *outputDir,
		MaxSize:   *maxSize,
		Limit:     *limit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create processor")
	}

	result, err := processor.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("gallery run failed")
	}

	log.Info().
		Int("saved", result.Saved).
		Int("skipped", result.Skipped).
		Str("gallery", result.GalleryPath).
		Msg("done")
}
