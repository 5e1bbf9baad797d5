// Package publish renders budget categories and writes the resulting
// documents to an object store.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ynabviz/internal/blob"
	"ynabviz/internal/core"
	"ynabviz/internal/log"
	"ynabviz/internal/render"
)

const (
	DashboardKey  = "dashboard.html"
	ChartImageKey = "dashboard.png"

	ContentTypeHTML = "text/html"
	ContentTypePNG  = "image/png"
)

// Mode selects the document layout.
type Mode string

const (
	// ModeDashboard uploads one page holding every chart.
	ModeDashboard Mode = "dashboard"
	// ModeCategories uploads one standalone page per category.
	ModeCategories Mode = "categories"
)

func (m Mode) IsValid() bool {
	return m == ModeDashboard || m == ModeCategories
}

// Document is one rendered object ready for upload.
type Document struct {
	Key         string
	Category    string
	Body        []byte
	ContentType string
}

type Publisher struct {
	store       blob.ObjectWriter
	locator     Locator
	logger      *log.Logger
	render      render.Options
	chartImage  bool
	concurrency int
}

// Option configures a Publisher.
type Option func(*Publisher)

func WithLogger(logger *log.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger.WithComponent(log.ComponentPublish)
	}
}

func WithRenderOptions(opts render.Options) Option {
	return func(p *Publisher) {
		p.render = opts
	}
}

// WithChartImage also uploads a PNG bar chart in dashboard mode.
func WithChartImage(enabled bool) Option {
	return func(p *Publisher) {
		p.chartImage = enabled
	}
}

// WithConcurrency caps simultaneous uploads. Zero means unlimited.
func WithConcurrency(n int) Option {
	return func(p *Publisher) {
		p.concurrency = n
	}
}

func New(store blob.ObjectWriter, locator Locator, opts ...Option) *Publisher {
	p := &Publisher{
		store:   store,
		locator: locator,
		logger:  log.NewDiscard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Locator returns the URL scheme used for published objects.
func (p *Publisher) Locator() Locator {
	return p.locator
}

// Publish renders and uploads categories in the given mode. The returned
// error is non-nil when rendering failed or at least one upload failed;
// the report still describes every attempted upload.
func (p *Publisher) Publish(ctx context.Context, mode Mode, categories []core.CategoryData) (Report, error) {
	switch mode {
	case ModeDashboard, "":
		return p.PublishDashboard(ctx, categories)
	case ModeCategories:
		return p.PublishCategories(ctx, categories)
	default:
		return Report{}, fmt.Errorf("unknown publish mode %q", mode)
	}
}

// PublishDashboard assembles the single dashboard page and uploads it under
// DashboardKey.
func (p *Publisher) PublishDashboard(ctx context.Context, categories []core.CategoryData) (Report, error) {
	dash, err := render.Assemble(categories, p.render)
	if err != nil {
		return Report{Mode: ModeDashboard}, fmt.Errorf("assemble dashboard: %w", err)
	}
	p.logger.InfoContext(ctx, "Dashboard assembled",
		log.FieldCategories, len(dash.Rendered),
		log.FieldFiltered, dash.Filtered,
		log.FieldBytes, len(dash.HTML))

	docs := []Document{{Key: DashboardKey, Body: []byte(dash.HTML), ContentType: ContentTypeHTML}}
	if p.chartImage {
		png, err := render.ChartImage(categories, p.render)
		switch {
		case errors.Is(err, render.ErrNoBars):
			p.logger.DebugContext(ctx, "Skipping chart image, nothing to chart")
		case err != nil:
			return Report{Mode: ModeDashboard, Filtered: dash.Filtered}, fmt.Errorf("render chart image: %w", err)
		default:
			docs = append(docs, Document{Key: ChartImageKey, Body: png, ContentType: ContentTypePNG})
		}
	}

	report := p.Upload(ctx, docs)
	report.Mode = ModeDashboard
	report.Filtered = dash.Filtered
	return report, report.Err()
}

// PublishCategories renders one standalone page per budgeted category and
// uploads them concurrently.
func (p *Publisher) PublishCategories(ctx context.Context, categories []core.CategoryData) (Report, error) {
	docs := make([]Document, 0, len(categories))
	filtered := 0
	for _, c := range categories {
		if !c.HasBudget() {
			filtered++
			continue
		}
		page, err := render.CategoryPage(c, p.render)
		if err != nil {
			return Report{Mode: ModeCategories, Filtered: filtered}, fmt.Errorf("render %q: %w", c.Name, err)
		}
		docs = append(docs, Document{
			Key:         CategoryKey(c.Name),
			Category:    c.Name,
			Body:        []byte(page),
			ContentType: ContentTypeHTML,
		})
	}

	report := p.Upload(ctx, docs)
	report.Mode = ModeCategories
	report.Filtered = filtered
	return report, report.Err()
}

// Upload writes every document concurrently and waits for all of them.
// A failed upload does not cancel the others and nothing is rolled back.
// Each key is written at most once: later documents mapping to a key
// already claimed fail with ErrDuplicateKey.
func (p *Publisher) Upload(ctx context.Context, docs []Document) Report {
	results := make([]ItemResult, len(docs))
	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	owner := make(map[string]int, len(docs))
	for i, doc := range docs {
		if first, dup := owner[doc.Key]; dup {
			err := fmt.Errorf("%w: %q collides with %q", ErrDuplicateKey, doc.Category, docs[first].Category)
			results[i] = ItemResult{Key: doc.Key, Category: doc.Category, Err: err}
			p.logger.WarnContext(ctx, "Skipping upload, key already in use",
				log.FieldKey, doc.Key,
				log.FieldCategory, doc.Category,
				log.FieldError, err.Error())
			continue
		}
		owner[doc.Key] = i

		g.Go(func() error {
			start := time.Now()
			url := p.locator.URL(doc.Key)
			err := p.store.Put(ctx, blob.Object{Key: doc.Key, Body: doc.Body, ContentType: doc.ContentType})
			results[i] = ItemResult{Key: doc.Key, Category: doc.Category, URL: url, Err: err}

			fields := log.NewFields().
				WithUpload(doc.Key, url, len(doc.Body)).
				WithOperation(log.OpUpload)
			fields[log.FieldDuration] = time.Since(start).Milliseconds()
			if err != nil {
				p.logger.ErrorContext(ctx, "Upload failed", fields.WithError(err).ToSlice()...)
				return err
			}
			p.logger.InfoContext(ctx, "Upload complete", fields.ToSlice()...)
			return nil
		})
	}
	// every item carries its own error; Wait is only the join barrier
	_ = g.Wait()

	return Report{Items: results}
}
