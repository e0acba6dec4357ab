package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"jusho-client/internal/client"
	"jusho-client/internal/config"
	"jusho-client/internal/importer"
	"jusho-client/internal/logging"
	"jusho-client/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file of addresses to normalize")
	lookup := flag.String("lookup", "", "Print stored results for this postal code instead of importing")
	flag.Parse()

	if *file == "" && *lookup == "" {
		fmt.Println("Error: --file or --lookup flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	ctx := context.Background()

	// Connect to DB
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot create schema")
	}

	if *lookup != "" {
		printStored(ctx, repo, client.SanitizePostalCode(*lookup))
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open file")
	}
	addresses, err := importer.ReadAddresses(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("addresses", len(addresses)).Str("file", *file).Msg("parsed input")

	headers, err := cfg.HeaderMap()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse headers")
	}
	jusho := client.New(client.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Headers: headers,
		Logger:  &logger,
	})

	im := importer.New(jusho, repo)

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(addresses),
			progressbar.OptionSetDescription("Normalizing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		im.OnChunk = func(done int) {
			_ = bar.Add(done)
		}
	}

	stats, err := im.Run(ctx, addresses)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		log.Fatal().Err(err).Int("stored", int(stats.Stored)).Msg("import aborted")
	}

	// Verify data
	succeeded, failed, err := repo.CountOutcomes(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot verify import")
	}

	log.Info().
		Int("read", stats.Read).
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int64("stored", stats.Stored).
		Int("table_succeeded", succeeded).
		Int("table_failed", failed).
		Msg("import finished")
}

func printStored(ctx context.Context, repo *repository.Repository, postCode string) {
	results, err := repo.FindByPostalCode(ctx, postCode)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot query stored results")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		log.Fatal().Err(err).Msg("cannot print results")
	}
}
