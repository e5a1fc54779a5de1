// Package main imports LibreDTE-style DTE documents into Odoo as draft
// account moves.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bmya/odoo-gateway/internal/config"
	"github.com/bmya/odoo-gateway/internal/invoice"
	"github.com/bmya/odoo-gateway/internal/odoo"
)

func main() {
	var (
		company   = flag.String("company", "", "company configuration name from the tenants file")
		inputFile = flag.String("input", "salida.json", "path to the JSON array of DTE documents")
		partnerID = flag.Int64("partner", 0, "id of the res.partner the moves are billed to")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *company == "" {
		log.Fatal().Msg("-company is required")
	}
	if *partnerID <= 0 {
		log.Fatal().Msg("-partner is required")
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

	docs, err := invoice.LoadDocuments(*inputFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load documents")
	}
	log.Info().Int("documents", len(docs)).Str("input", *inputFile).Msg("documents loaded")

	importer, err := invoice.NewImporter(invoice.Config{
		Client:    client,
		PartnerID: *partnerID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create importer")
	}

	ctx := context.Background()
	if err := importer.Prepare(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load lookup tables")
	}

	result, err := importer.Run(ctx, docs)
	if err != nil {
		log.Fatal().Err(err).
			Int("created", len(result.CreatedIDs)).
			Int("skipped", result.Skipped).
			Msg("import aborted")
	}

	log.Info().
		Ints64("created_ids", result.CreatedIDs).
		Int("created", len(result.CreatedIDs)).
		Int("skipped", result.Skipped).
		Msg("import finished")
}
