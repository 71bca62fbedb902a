package readmescmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-apidocs/internal/readmesync"
	goerrors "github.com/goliatone/go-errors"
)

type stubSynchronizer struct {
	requests []readmesync.Request
	report   *readmesync.Report
	err      error
}

func (s *stubSynchronizer) Synchronize(_ context.Context, req readmesync.Request) (*readmesync.Report, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.report != nil {
		return s.report, nil
	}
	outcomes := make([]readmesync.Outcome, 0, len(req.Modules))
	for _, module := range req.Modules {
		outcomes = append(outcomes, readmesync.Outcome{Module: module, Written: true})
	}
	return &readmesync.Report{Outcomes: outcomes}, nil
}

func baseRequest() readmesync.Request {
	return readmesync.Request{
		Modules:      []string{"zf-hal", "zf-rest", "zf-rpc"},
		URITemplate:  readmesync.DefaultURITemplate,
		PathTemplate: readmesync.DefaultPathTemplate,
	}
}

func TestSyncReadmesHandlerUsesConfiguredModules(t *testing.T) {
	sync := &stubSynchronizer{}
	var reported *readmesync.Report
	handler, err := NewSyncReadmesHandler(sync, baseRequest(), nil, WithReportHook(func(r *readmesync.Report) {
		reported = r
	}))
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), SyncReadmesCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(sync.requests) != 1 || len(sync.requests[0].Modules) != 3 {
		t.Fatalf("expected configured modules, got %+v", sync.requests)
	}
	if reported == nil || len(reported.Written()) != 3 {
		t.Fatalf("expected report hook to receive the report, got %+v", reported)
	}
}

func TestSyncReadmesHandlerAppliesModuleOverride(t *testing.T) {
	sync := &stubSynchronizer{}
	base := baseRequest()
	handler, err := NewSyncReadmesHandler(sync, base, nil)
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), SyncReadmesCommand{Modules: []string{"zf-oauth2"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := sync.requests[0]
	if strings.Join(got.Modules, ",") != "zf-oauth2" {
		t.Fatalf("expected override modules, got %v", got.Modules)
	}
	if got.URITemplate != base.URITemplate || got.PathTemplate != base.PathTemplate {
		t.Fatalf("expected templates from base request, got %+v", got)
	}
	if len(base.Modules) != 3 {
		t.Fatal("expected base request to stay untouched")
	}
}

func TestSyncReadmesHandlerRejectsInvalidMessage(t *testing.T) {
	sync := &stubSynchronizer{}
	handler, err := NewSyncReadmesHandler(sync, baseRequest(), nil)
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	err = handler.Execute(context.Background(), SyncReadmesCommand{Modules: []string{"../etc"}})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(sync.requests) != 0 {
		t.Fatal("expected synchronizer not to run")
	}
}

func TestSyncReadmesHandlerSurfacesWriteFailures(t *testing.T) {
	sync := &stubSynchronizer{report: &readmesync.Report{Outcomes: []readmesync.Outcome{
		{Module: "zf-hal", Written: true},
		{Module: "zf-rest", WriteErr: errors.New("disk full")},
	}}}
	handler, err := NewSyncReadmesHandler(sync, baseRequest(), nil)
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	err = handler.Execute(context.Background(), SyncReadmesCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSyncReadmesHandlerToleratesFetchFailures(t *testing.T) {
	sync := &stubSynchronizer{report: &readmesync.Report{Outcomes: []readmesync.Outcome{
		{Module: "zf-hal", Written: true},
		{Module: "zf-rest", FetchErr: errors.New("connection refused")},
	}}}
	handler, err := NewSyncReadmesHandler(sync, baseRequest(), nil)
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	if err := handler.Execute(context.Background(), SyncReadmesCommand{}); err != nil {
		t.Fatalf("expected fetch failures to be tolerated, got %v", err)
	}
}

func TestSyncReadmesHandlerCronAndCLIMetadata(t *testing.T) {
	handler, err := NewSyncReadmesHandler(&stubSynchronizer{}, baseRequest(), nil, WithCronExpression("0 3 * * *"))
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	if got := handler.CronOptions().Expression; got != "0 3 * * *" {
		t.Fatalf("unexpected cron expression %q", got)
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron handler: %v", err)
	}
	opts := handler.CLIOptions()
	if strings.Join(opts.Path, " ") != "readmes sync" || opts.Group != "readmes" {
		t.Fatalf("unexpected CLI options %+v", opts)
	}
	if handler.CLIHandler() != handler {
		t.Fatal("expected CLIHandler to return the handler")
	}
}

func TestNewSyncReadmesHandlerRequiresSynchronizer(t *testing.T) {
	if _, err := NewSyncReadmesHandler(nil, baseRequest(), nil); !errors.Is(err, ErrSynchronizerRequired) {
		t.Fatalf("expected ErrSynchronizerRequired, got %v", err)
	}
}

type interruptedSynchronizer struct{}

func (interruptedSynchronizer) Synchronize(_ context.Context, req readmesync.Request) (*readmesync.Report, error) {
	report := &readmesync.Report{}
	for _, module := range req.Modules {
		report.Outcomes = append(report.Outcomes, readmesync.Outcome{Module: module, WriteErr: context.Canceled})
	}
	return report, context.Canceled
}

func TestSyncReadmesHandlerReportsInterruptedRun(t *testing.T) {
	var reported *readmesync.Report
	handler, err := NewSyncReadmesHandler(interruptedSynchronizer{}, baseRequest(), nil, WithReportHook(func(r *readmesync.Report) {
		reported = r
	}))
	if err != nil {
		t.Fatalf("NewSyncReadmesHandler: %v", err)
	}

	err = handler.Execute(context.Background(), SyncReadmesCommand{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if reported == nil || len(reported.WriteFailures()) != 3 {
		t.Fatalf("expected partial report for all modules, got %+v", reported)
	}
}
