package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ynabviz/internal/budget"
	"ynabviz/internal/core"
	"ynabviz/internal/log"
	"ynabviz/internal/publish"
	"ynabviz/internal/workspace"
)

// Orchestrator runs one refresh: fetch the Food group, normalize it and push
// it to the configured sink.
type Orchestrator struct {
	source    budget.CategorySource
	budgetID  string
	publisher *publish.Publisher
	mode      publish.Mode
	workspace workspace.Writer
	sink      string
	now       func() time.Time
	logger    *log.Logger
}

// Deps are the collaborators of an Orchestrator. Exactly one of Publisher
// and Workspace must be set.
type Deps struct {
	Source    budget.CategorySource
	BudgetID  string
	Publisher *publish.Publisher
	Mode      publish.Mode
	Workspace workspace.Writer
	// Sink names the destination in logs.
	Sink   string
	Now    func() time.Time
	Logger *log.Logger
}

func NewOrchestrator(d Deps) (*Orchestrator, error) {
	if d.Source == nil {
		return nil, errors.New("orchestrator: category source is required")
	}
	if (d.Publisher == nil) == (d.Workspace == nil) {
		return nil, errors.New("orchestrator: exactly one of publisher or workspace writer is required")
	}
	if d.Mode == "" {
		d.Mode = publish.ModeDashboard
	}
	if !d.Mode.IsValid() {
		return nil, fmt.Errorf("orchestrator: unknown publish mode %q", d.Mode)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = log.NewDiscard()
	}
	return &Orchestrator{
		source:    d.Source,
		budgetID:  d.BudgetID,
		publisher: d.Publisher,
		mode:      d.Mode,
		workspace: d.Workspace,
		sink:      d.Sink,
		now:       d.Now,
		logger:    d.Logger.WithComponent(log.ComponentOrchestra),
	}, nil
}

// Outcome is the result of a successful Run. Categories is the full
// normalized Food group, zero-budget rows included.
type Outcome struct {
	Categories []core.CategoryData
	// Report and BaseURL are set for object store sinks.
	Report  *publish.Report
	BaseURL string
	// Workspace is set for workspace sinks.
	Workspace *workspace.Result
}

// Run performs one refresh. On a partial publish failure the returned
// Outcome still carries the report alongside the error.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	logger := o.logger
	if l, ok := log.FromContextOK(ctx); ok {
		logger = l.WithComponent(log.ComponentOrchestra)
	}

	logger.InfoContext(ctx, "Fetching categories",
		log.FieldBudgetID, o.budgetID,
		log.FieldOperation, log.OpFetch)
	groups, err := o.source.CategoryGroups(ctx, o.budgetID)
	if err != nil {
		return Outcome{}, &stageError{stage: "fetch categories", err: err}
	}
	logger.DebugContext(ctx, "Retrieved category groups", "count", len(groups))

	food, ok := core.FindGroup(groups, core.FoodGroupName)
	if !ok {
		logger.ErrorContext(ctx, "Food category group not found",
			"available_groups", core.GroupNames(groups))
		return Outcome{}, core.ErrFoodGroupNotFound
	}

	categories := core.NormalizeAll(food.Categories)
	totals := core.Summarize(categories)
	logger.InfoContext(ctx, "Normalized category data",
		log.FieldGroup, food.Name,
		log.FieldCategories, totals.Count,
		"total_budgeted", core.FormatAmount(totals.Budgeted),
		"total_balance", core.FormatAmount(totals.Balance),
		log.FieldOperation, log.OpNormalize)

	out := Outcome{Categories: categories}

	if o.workspace != nil {
		res, err := o.workspace.Write(ctx, workspace.Update{Categories: categories, UpdatedAt: o.now()})
		if err != nil {
			return out, &stageError{stage: "update " + o.sink, err: err}
		}
		out.Workspace = &res
		logger.InfoContext(ctx, "Workspace updated",
			log.FieldSink, o.sink,
			log.FieldOperation, log.OpUpdate,
			"target", res.Target)
		return out, nil
	}

	report, err := o.publisher.Publish(ctx, o.mode, categories)
	out.Report = &report
	out.BaseURL = o.publisher.Locator().BaseURL()
	if err != nil {
		return out, &stageError{stage: "publish visualizations", err: err}
	}
	logger.InfoContext(ctx, "Visualizations published",
		log.FieldSink, o.sink,
		log.FieldMode, string(o.mode),
		"uploaded", report.Succeeded(),
		log.FieldFiltered, report.Filtered)
	return out, nil
}

// Handle runs one refresh and maps the result to a response. It never
// returns an error: every failure becomes a 500 response.
func (o *Orchestrator) Handle(ctx context.Context) Response {
	invocationID := uuid.NewString()
	logger := o.logger.With(log.FieldInvocationID, invocationID)
	if l, ok := log.FromContextOK(ctx); ok {
		logger = l.With(log.FieldInvocationID, invocationID)
	}
	ctx = log.NewContext(ctx, logger)

	start := time.Now()
	logger.InfoContext(ctx, "Refresh started", log.FieldSink, o.sink)

	out, err := o.Run(ctx)
	if err != nil {
		fields := log.NewFields().WithError(err)
		fields[log.FieldDuration] = time.Since(start).Milliseconds()
		if out.Report != nil {
			for _, item := range out.Report.Failed() {
				logger.ErrorContext(ctx, "Visualization upload failed",
					log.FieldKey, item.Key,
					log.FieldCategory, item.Category,
					log.FieldError, item.Err.Error())
			}
		}
		logger.ErrorContext(ctx, "Refresh failed", fields.ToSlice()...)
		return ErrorResponse(upstreamCause(err))
	}

	logger.InfoContext(ctx, "Refresh completed",
		log.FieldDuration, time.Since(start).Milliseconds())
	return SuccessResponse(out, o.sink)
}

// stageError names the refresh step that failed. The step is logged; the
// response carries only the upstream message.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

func upstreamCause(err error) error {
	var se *stageError
	if errors.As(err, &se) {
		return se.err
	}
	return err
}
