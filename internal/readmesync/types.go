package readmesync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	// ErrNoModules is returned when a request carries no module identifiers.
	ErrNoModules = errors.New("readmesync: at least one module is required")
	// ErrDuplicateModule is returned when a module identifier is listed twice.
	ErrDuplicateModule = errors.New("readmesync: duplicate module identifier")
	// ErrInvalidModule is returned when a module identifier is not a valid slug.
	ErrInvalidModule = errors.New("readmesync: invalid module identifier")
)

// Request describes a single synchronisation run.
type Request struct {
	// Modules lists the distinct identifiers to mirror.
	Modules []string
	// URITemplate renders the source URI for a module.
	URITemplate string
	// PathTemplate renders the destination path for a module.
	PathTemplate string
	// Rules are applied to every fetched document in order.
	Rules []Rule
}

// Validate checks the request before any network I/O happens. Identifiers
// must be slugs so that a single-slot path template never maps two modules
// onto the same file or escapes the destination directory.
func (r Request) Validate() error {
	if len(r.Modules) == 0 {
		return ErrNoModules
	}
	seen := make(map[string]struct{}, len(r.Modules))
	for _, module := range r.Modules {
		if strings.TrimSpace(module) == "" || !slug.IsValid(module) {
			return fmt.Errorf("%w: %q", ErrInvalidModule, module)
		}
		if _, ok := seen[module]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateModule, module)
		}
		seen[module] = struct{}{}
	}
	if err := ValidateTemplate(r.URITemplate); err != nil {
		return fmt.Errorf("uri template: %w", err)
	}
	if err := ValidateTemplate(r.PathTemplate); err != nil {
		return fmt.Errorf("path template: %w", err)
	}
	for i, rule := range r.Rules {
		if rule.Pattern == nil {
			return fmt.Errorf("%w: rule %d (%q) is not compiled", ErrRulePattern, i, rule.Name)
		}
	}
	return nil
}

// Outcome records what happened to one module during a run.
type Outcome struct {
	Module string
	URI    string
	Path   string
	// StatusCode is the HTTP status of the fetch. Non-2xx bodies are still
	// written.
	StatusCode   int
	Bytes        int
	Checksum     string
	Written      bool
	FetchErr     error
	TransformErr error
	WriteErr     error
}

// Err returns the first failure recorded for the module.
func (o Outcome) Err() error {
	switch {
	case o.FetchErr != nil:
		return o.FetchErr
	case o.TransformErr != nil:
		return o.TransformErr
	default:
		return o.WriteErr
	}
}

// Report aggregates the outcomes of a run, in request order.
type Report struct {
	RunID    uuid.UUID
	Started  time.Time
	Finished time.Time
	Outcomes []Outcome
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r == nil || r.Finished.Before(r.Started) {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Written returns the outcomes whose file was written.
func (r *Report) Written() []Outcome {
	return r.filter(func(o Outcome) bool { return o.Written })
}

// FetchFailures returns the outcomes whose fetch failed. These modules were
// skipped and no file was written for them.
func (r *Report) FetchFailures() []Outcome {
	return r.filter(func(o Outcome) bool { return o.FetchErr != nil })
}

// WriteFailures returns the outcomes that were fetched but could not be
// transformed or written.
func (r *Report) WriteFailures() []Outcome {
	return r.filter(func(o Outcome) bool { return o.TransformErr != nil || o.WriteErr != nil })
}

// Err joins transform and write failures. Fetch failures are tolerated and
// only surface through FetchFailures.
func (r *Report) Err() error {
	var errs []error
	for _, outcome := range r.WriteFailures() {
		errs = append(errs, fmt.Errorf("module %s: %w", outcome.Module, outcome.Err()))
	}
	return errors.Join(errs...)
}

func (r *Report) filter(keep func(Outcome) bool) []Outcome {
	if r == nil {
		return nil
	}
	var out []Outcome
	for _, outcome := range r.Outcomes {
		if keep(outcome) {
			out = append(out, outcome)
		}
	}
	return out
}
