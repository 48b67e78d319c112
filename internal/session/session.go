package session

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sensefp/internal/discovery"
	"sensefp/internal/fingerprint"
	"sensefp/internal/generator"
	"sensefp/internal/logging"
	"sensefp/internal/services"
	"sensefp/internal/similarity"
)

// FailureMessage is shown for items whose generation failed.
const FailureMessage = "Failed to generate fingerprint"

const (
	defaultConcurrency    = 4
	defaultRequestTimeout = 90 * time.Second
	stageGenerate         = "generate"
)

// Status is the lifecycle state of one item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Request is one labeled input.
type Request struct {
	Label string
	Input generator.Input
}

// Item is the outcome for one request.
type Item struct {
	ID           string             `json:"id"`
	Label        string             `json:"label"`
	Input        string             `json:"input"`
	Context      string             `json:"context,omitempty"`
	Status       Status             `json:"status"`
	Result       fingerprint.Result `json:"result"`
	DiscoveryKey string             `json:"discovery_key,omitempty"`
	Error        string             `json:"error,omitempty"`
	FailureKind  string             `json:"failure_kind,omitempty"`
	Duration     time.Duration      `json:"duration"`
}

// Report is the full outcome of a Run.
type Report struct {
	ID          string                  `json:"id"`
	Strategy    string                  `json:"strategy"`
	Items       []Item                  `json:"items"`
	Comparisons []similarity.Comparison `json:"comparisons"`
}

// Completed returns the items that produced a fingerprint.
func (r *Report) Completed() []Item {
	out := make([]Item, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Status == StatusCompleted {
			out = append(out, item)
		}
	}
	return out
}

// Failed counts items that did not complete.
func (r *Report) Failed() int {
	return len(r.Items) - len(r.Completed())
}

// Options tunes a Runner. Zero values select defaults.
type Options struct {
	Concurrency    int
	Stagger        time.Duration
	RequestTimeout time.Duration
	Strategy       similarity.Strategy
	Logger         *slog.Logger
	NewID          func() string
}

// Runner executes sessions against a generator.
type Runner struct {
	gen    generator.Generator
	opts   Options
	logger *slog.Logger
}

// New builds a Runner.
func New(gen generator.Generator, opts Options) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Stagger < 0 {
		opts.Stagger = 0
	}
	if opts.Strategy == nil {
		opts.Strategy = similarity.Tiered{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{gen: gen, opts: opts, logger: logging.NewComponentLogger(logger, "session")}
}

// Run generates a fingerprint for every request and compares the completed
// ones. The report is returned even when ctx is canceled part way through.
func (r *Runner) Run(ctx context.Context, requests []Request) (*Report, error) {
	if r.gen == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "run", "generator is required", nil)
	}
	if len(requests) == 0 {
		return nil, services.Wrap(services.ErrValidation, "session", "run", "at least one input is required", nil)
	}

	report := &Report{
		ID:       r.opts.NewID(),
		Strategy: r.opts.Strategy.Name(),
		Items:    make([]Item, len(requests)),
	}
	ctx = services.WithRequestID(ctx, report.ID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("session started",
		logging.Int("items", len(requests)),
		logging.Int("concurrency", r.opts.Concurrency),
		logging.String(logging.FieldStrategy, report.Strategy),
	)

	for i, req := range requests {
		report.Items[i] = Item{
			ID:      r.opts.NewID(),
			Label:   labelFor(req, i),
			Input:   req.Input.Text,
			Context: req.Input.Context,
			Status:  StatusPending,
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if r.opts.Stagger > 0 {
		limiter = rate.NewLimiter(rate.Every(r.opts.Stagger), 1)
	}

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i := range requests {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Each goroutine owns report.Items[i].
			r.runItem(ctx, limiter, &report.Items[i], requests[i].Input)
			return nil
		})
	}
	_ = g.Wait()

	for i := range report.Items {
		if report.Items[i].Status == StatusPending {
			report.Items[i].Status = StatusCanceled
			report.Items[i].FailureKind = services.FailureKind(context.Canceled)
		}
	}

	entries := make([]similarity.Entry, 0, len(report.Items))
	for _, item := range report.Items {
		if item.Status == StatusCompleted {
			entries = append(entries, similarity.Entry{ID: item.ID, Label: item.Label, Result: item.Result})
		}
	}
	report.Comparisons = similarity.Pairwise(entries, r.opts.Strategy)
	if report.Comparisons == nil {
		report.Comparisons = []similarity.Comparison{}
	}

	logger.Info("session completed",
		logging.Int("completed", len(entries)),
		logging.Int("failed", len(report.Items)-len(entries)),
		logging.Int("comparisons", len(report.Comparisons)),
	)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Runner) runItem(ctx context.Context, limiter *rate.Limiter, item *Item, in generator.Input) {
	ctx = services.WithItemID(ctx, item.ID)
	ctx = services.WithStage(ctx, stageGenerate)
	logger := logging.WithContext(ctx, r.logger)

	if err := limiter.Wait(ctx); err != nil {
		// Wait reports a deadline it cannot meet with its own error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		r.fail(logger, item, err)
		return
	}

	itemCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := r.gen.Generate(itemCtx, in)
	item.Duration = time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, services.ErrTimeout) {
			err = services.Wrap(services.ErrTimeout, stageGenerate, "request", "generation exceeded "+r.opts.RequestTimeout.String(), err)
		}
		r.fail(logger, item, err)
		return
	}

	item.Status = StatusCompleted
	item.Result = result
	item.DiscoveryKey = discovery.ResultKey(result)
	logger.Debug("fingerprint ready",
		logging.String(logging.FieldDiscoveryKey, item.DiscoveryKey),
		logging.Int("words", result.Len()),
		logging.Duration("duration", item.Duration),
	)
}

func (r *Runner) fail(logger *slog.Logger, item *Item, err error) {
	item.FailureKind = services.FailureKind(err)
	item.Error = err.Error()
	if item.FailureKind == "canceled" {
		item.Status = StatusCanceled
		logger.Debug("generation canceled")
		return
	}
	item.Status = StatusFailed
	logging.WarnWithContext(logger, FailureMessage, "generation_failed",
		logging.String("label", item.Label),
		logging.String("failure_kind", item.FailureKind),
		logging.String(logging.FieldErrorHint, "check the llm settings with 'sensefp llm health'"),
		logging.String(logging.FieldImpact, "item excluded from comparisons"),
		logging.Error(err),
	)
}

func labelFor(req Request, index int) string {
	if label := strings.TrimSpace(req.Label); label != "" {
		return label
	}
	text := strings.Join(strings.Fields(req.Input.Text), " ")
	if runes := []rune(text); len(runes) > 32 {
		text = string(runes[:32]) + "..."
	}
	if text == "" {
		return "Input " + strconv.Itoa(index+1)
	}
	return text
}
