package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ersonp/canon-core/internal/application/handlers"
	"github.com/ersonp/canon-core/internal/domain/ports"
	"github.com/ersonp/canon-core/internal/domain/services"
	"github.com/ersonp/canon-core/internal/infrastructure/config"
	embedder "github.com/ersonp/canon-core/internal/infrastructure/embedder/openai"
	llm "github.com/ersonp/canon-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/canon-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/canon-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config         *config.Config
	Worlds         *config.WorldsConfig
	EntryHandler   *handlers.EntryHandler
	ChapterHandler *handlers.ChapterHandler
	ImpactHandler  *handlers.ImpactHandler
	IssueHandler   *handlers.IssueHandler
	ExtractHandler *handlers.ExtractHandler
	QueryHandler   *handlers.QueryHandler
	ExportHandler  *handlers.ExportHandler
	ImportHandler  *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	vectorDB     *qdrant.Repository
	relationalDB *sqlite.Repository
	embedder     *embedder.Embedder
	analyzer     ports.IssueAnalyzer
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if globalWorld == "" {
		return errors.New("world is required (use --world flag)")
	}

	collection, err := worlds.GetCollection(globalWorld)
	if err != nil {
		return err
	}

	qdrantCfg := cfg.Qdrant
	qdrantCfg.Collection = collection

	vectorDB, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer vectorDB.Close()

	sqlitePath := config.SQLitePathForWorld(cwd, globalWorld)
	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	emb, err := embedder.NewEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	analyzer, err := buildAnalyzer(cfg.Analyzer)
	if err != nil {
		return err
	}

	queryService := services.NewQueryService(emb, vectorDB)
	continuityService := services.NewContinuityService(relationalDB, analyzer)

	deps := &internalDeps{
		Deps: Deps{
			Config:         cfg,
			Worlds:         worlds,
			EntryHandler:   handlers.NewEntryHandler(relationalDB, queryService, continuityService),
			ChapterHandler: handlers.NewChapterHandler(relationalDB),
			ImpactHandler:  handlers.NewImpactHandler(relationalDB, continuityService),
			IssueHandler:   handlers.NewIssueHandler(continuityService),
			ExtractHandler: handlers.NewExtractHandler(analyzer),
			QueryHandler:   handlers.NewQueryHandler(queryService),
			ExportHandler:  handlers.NewExportHandler(relationalDB),
			ImportHandler:  handlers.NewImportHandler(relationalDB, queryService, continuityService),
		},
		vectorDB:     vectorDB,
		relationalDB: relationalDB,
		embedder:     emb,
		analyzer:     analyzer,
	}

	return fn(deps)
}

// buildAnalyzer selects the issue analyzer from config. Provider "rules"
// needs no credentials; "openai" routes analysis and extraction through the
// LLM.
func buildAnalyzer(cfg config.AnalyzerConfig) (ports.IssueAnalyzer, error) {
	switch cfg.Provider {
	case "", "rules":
		return services.NewRuleBasedAnalyzer(), nil
	case "openai":
		client, err := llm.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating openai analyzer: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown analyzer provider %q (valid: rules, openai)", cfg.Provider)
	}
}

// worldID returns the identifier entries are stored under for the active
// world. Worlds are keyed by their sanitized name so renaming the directory
// does not orphan data.
func worldID() string {
	return config.SanitizeWorldName(globalWorld)
}
