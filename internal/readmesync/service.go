package readmesync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

// Synchronizer runs README synchronisation batches.
type Synchronizer struct {
	fetcher Fetcher
	writer  Writer
	logger  interfaces.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// Option customises a Synchronizer.
type Option func(*Synchronizer)

// WithFetcher overrides the fetcher. Defaults to NewHTTPFetcher().
func WithFetcher(fetcher Fetcher) Option {
	return func(s *Synchronizer) {
		if fetcher != nil {
			s.fetcher = fetcher
		}
	}
}

// WithWriter overrides the writer. Defaults to a FileWriter rooted at ".".
func WithWriter(writer Writer) Option {
	return func(s *Synchronizer) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithLogger injects the logger used during runs.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how run identifiers are generated.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Synchronizer) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewSynchronizer constructs a Synchronizer.
func NewSynchronizer(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fetcher: NewHTTPFetcher(),
		writer:  NewFileWriter("."),
		logger:  logging.NoOp(),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type fetched struct {
	uri    string
	result FetchResult
	err    error
}

// Synchronize fetches every module README concurrently and, once all fetches
// have finished, transforms and writes each document. Request errors are
// returned before any I/O. Per-module failures never abort the batch: they
// are recorded on the returned Report. When ctx is done by the time the
// fetches have joined, nothing is written and the partial Report is
// returned together with the context error.
func (s *Synchronizer) Synchronize(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	report := &Report{
		RunID:    s.newID(),
		Started:  s.now(),
		Outcomes: make([]Outcome, 0, len(req.Modules)),
	}
	logger := logging.WithFields(s.logger, map[string]any{
		"run_id":       report.RunID,
		"module_count": len(req.Modules),
	})
	logger.Debug("readmes.sync.start")

	results := s.fetchAll(ctx, req)

	if err := ctx.Err(); err != nil {
		for i, module := range req.Modules {
			report.Outcomes = append(report.Outcomes, interrupted(req, module, results[i], err))
		}
		report.Finished = s.now()
		logger.Error("readmes.sync.cancelled",
			"error", err,
			"fetched", len(req.Modules)-len(report.FetchFailures()),
		)
		return report, fmt.Errorf("readmesync: batch interrupted: %w", err)
	}

	for i, module := range req.Modules {
		report.Outcomes = append(report.Outcomes, s.complete(ctx, logger, req, module, results[i]))
	}

	report.Finished = s.now()
	logger.Info("readmes.sync.completed",
		"written", len(report.Written()),
		"fetch_failures", len(report.FetchFailures()),
		"write_failures", len(report.WriteFailures()),
		"duration_ms", report.Duration().Milliseconds(),
	)
	return report, nil
}

// fetchAll launches one fetch per module and returns once every fetch has
// reached a terminal state. Results are indexed like req.Modules.
func (s *Synchronizer) fetchAll(ctx context.Context, req Request) []fetched {
	results := make([]fetched, len(req.Modules))
	g := new(errgroup.Group)
	for i, module := range req.Modules {
		uri := Render(req.URITemplate, module)
		g.Go(func() error {
			result, err := s.fetcher.Fetch(ctx, uri)
			results[i] = fetched{uri: uri, result: result, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// interrupted records a module of a cancelled batch. Nothing is written
// once the context is done, so fetched modules carry the cancellation as
// their write error.
func interrupted(req Request, module string, res fetched, cause error) Outcome {
	outcome := Outcome{
		Module:     module,
		URI:        res.uri,
		Path:       Render(req.PathTemplate, module),
		StatusCode: res.result.StatusCode,
	}
	if res.err != nil {
		outcome.FetchErr = res.err
		return outcome
	}
	outcome.WriteErr = fmt.Errorf("readmesync: write skipped: %w", cause)
	return outcome
}

func (s *Synchronizer) complete(ctx context.Context, logger interfaces.Logger, req Request, module string, res fetched) Outcome {
	outcome := Outcome{
		Module: module,
		URI:    res.uri,
		Path:   Render(req.PathTemplate, module),
	}
	moduleLogger := logging.WithReadmeContext(logger, module, outcome.URI, outcome.Path)

	if res.err != nil {
		outcome.FetchErr = res.err
		moduleLogger.Warn("readmes.sync.fetch.failed", "error", res.err)
		return outcome
	}

	outcome.StatusCode = res.result.StatusCode
	if outcome.StatusCode < 200 || outcome.StatusCode > 299 {
		moduleLogger.Warn("readmes.sync.fetch.unexpected_status", "status", outcome.StatusCode)
	}

	content, err := ApplyRules(string(res.result.Body), module, req.Rules)
	if err != nil {
		outcome.TransformErr = err
		moduleLogger.Error("readmes.sync.transform.failed", "error", err)
		return outcome
	}

	data := []byte(content)
	if err := s.writer.WriteFile(ctx, outcome.Path, data); err != nil {
		outcome.WriteErr = err
		moduleLogger.Error("readmes.sync.write.failed", "error", err)
		return outcome
	}

	sum := sha256.Sum256(data)
	outcome.Written = true
	outcome.Bytes = len(data)
	outcome.Checksum = hex.EncodeToString(sum[:])
	moduleLogger.Debug("readmes.sync.module.written", "bytes", outcome.Bytes)
	return outcome
}
