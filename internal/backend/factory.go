// Package backend builds the refresh pipeline from configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"ynabviz/internal/blob/memory"
	"ynabviz/internal/blob/s3store"
	"ynabviz/internal/blob/sqlite"
	"ynabviz/internal/budget"
	"ynabviz/internal/budget/ynab"
	"ynabviz/internal/cache"
	"ynabviz/internal/config"
	"ynabviz/internal/log"
	"ynabviz/internal/publish"
	"ynabviz/internal/render"
	"ynabviz/internal/services"
	"ynabviz/internal/workspace/notion"
	"ynabviz/internal/workspace/sheets"
)

const (
	objectCacheBytes = 8 << 20
	objectCacheTTL   = 5 * time.Minute
)

// Factory creates sinks and orchestrators based on configuration
type Factory struct {
	logger *log.Logger
	// Source overrides the YNAB client, used for dry runs.
	Source budget.CategorySource
	// Now is the single clock behind the pace marker and workspace
	// timestamps.
	Now func() time.Time
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.NewDiscard()
	}
	return &Factory{logger: logger.WithComponent(log.ComponentApp), Now: time.Now}
}

func (f *Factory) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// CreateSink builds the sink selected by cfg.Sink.
func (f *Factory) CreateSink(ctx context.Context, cfg *config.Config) (*SinkResult, error) {
	st := SinkType(cfg.Sink)
	if !st.IsValid() {
		return nil, fmt.Errorf("invalid sink type: %s", cfg.Sink)
	}

	switch st {
	case S3Sink:
		return f.createS3Sink(ctx, cfg)
	case SQLiteSink:
		return f.createSQLiteSink(cfg)
	case MemorySink:
		return f.createMemorySink(cfg)
	case NotionSink:
		return f.createNotionSink(cfg)
	case SheetsSink:
		return f.createSheetsSink(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", st)
	}
}

func (f *Factory) publisherOptions(cfg *config.Config) []publish.Option {
	return []publish.Option{
		publish.WithLogger(f.logger),
		publish.WithRenderOptions(render.Options{ShowPace: cfg.ShowPace, Now: f.now}),
		publish.WithChartImage(cfg.ChartImage),
		publish.WithConcurrency(cfg.UploadConcurrency),
	}
}

func (f *Factory) createS3Sink(ctx context.Context, cfg *config.Config) (*SinkResult, error) {
	store, err := s3store.NewFromEnv(ctx, cfg.AWSRegion, cfg.Bucket, s3store.WithPublicRead(cfg.S3PublicRead))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 store: %w", err)
	}
	locator := publish.S3Website{Bucket: cfg.Bucket, Region: cfg.AWSRegion}

	f.logger.Info("Initialized S3 sink", "bucket", cfg.Bucket, "region", cfg.AWSRegion)
	return &SinkResult{
		Type:      S3Sink,
		Publisher: publish.New(store, locator, f.publisherOptions(cfg)...),
	}, nil
}

func (f *Factory) createSQLiteSink(cfg *config.Config) (*SinkResult, error) {
	db, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	store := cache.NewStore(db, cache.NewLRU(objectCacheBytes, objectCacheTTL))

	f.logger.Info("Initialized SQLite sink", "db_path", cfg.SQLiteDBPath)
	return &SinkResult{
		Type:      SQLiteSink,
		Publisher: publish.New(store, publish.BaseURL(cfg.PublicBaseURL), f.publisherOptions(cfg)...),
		Objects:   store,
		Cleanup:   db.Close,
	}, nil
}

func (f *Factory) createMemorySink(cfg *config.Config) (*SinkResult, error) {
	store := memory.New()

	f.logger.Info("Initialized memory sink")
	return &SinkResult{
		Type:      MemorySink,
		Publisher: publish.New(store, publish.BaseURL(cfg.PublicBaseURL), f.publisherOptions(cfg)...),
		Objects:   store,
	}, nil
}

func (f *Factory) createNotionSink(cfg *config.Config) (*SinkResult, error) {
	client := notion.NewClient(cfg.NotionAPIKey, cfg.NotionPageID, notion.WithLogger(f.logger))

	f.logger.Info("Initialized Notion sink", "page_id", cfg.NotionPageID)
	return &SinkResult{Type: NotionSink, Workspace: client}, nil
}

func (f *Factory) createSheetsSink(ctx context.Context, cfg *config.Config) (*SinkResult, error) {
	creds := sheets.Credentials{JSON: cfg.GoogleServiceAccountJSON, File: cfg.GoogleServiceAccountFile}
	client, err := sheets.NewFromCredentials(ctx, creds, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets sink", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return &SinkResult{Type: SheetsSink, Workspace: client}, nil
}

// CreateOrchestrator wires the budget source and the configured sink.
// The caller owns the returned sink and must Close it.
func (f *Factory) CreateOrchestrator(ctx context.Context, cfg *config.Config) (*services.Orchestrator, *SinkResult, error) {
	sink, err := f.CreateSink(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	source := f.Source
	if source == nil {
		source = ynab.NewClient(cfg.YNABAccessToken,
			ynab.WithBaseURL(cfg.YNABBaseURL),
			ynab.WithLogger(f.logger))
	}

	o, err := services.NewOrchestrator(services.Deps{
		Source:    source,
		BudgetID:  cfg.YNABBudgetID,
		Publisher: sink.Publisher,
		Mode:      publish.Mode(cfg.PublishMode),
		Workspace: sink.Workspace,
		Sink:      sink.Type.String(),
		Now:       f.now,
		Logger:    f.logger,
	})
	if err != nil {
		_ = sink.Close()
		return nil, nil, err
	}
	return o, sink, nil
}
