package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-apidocs"
	"github.com/goliatone/go-apidocs/cmd/internal/bootstrap"
	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/internal/readmesync"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

type stubFetcher struct {
	mu   sync.Mutex
	uris []string
	fail map[string]bool
}

func (f *stubFetcher) Fetch(_ context.Context, uri string) (readmesync.FetchResult, error) {
	f.mu.Lock()
	f.uris = append(f.uris, uri)
	f.mu.Unlock()
	for module := range f.fail {
		if strings.Contains(uri, "/"+module+"/") {
			return readmesync.FetchResult{}, errors.New("connection reset")
		}
	}
	return readmesync.FetchResult{StatusCode: 200, Body: []byte("Read the [guide](doc/guide.md).\n")}, nil
}

type nopProvider struct{}

func (nopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func withModuleBuilder(t *testing.T, fetcher readmesync.Fetcher) *bootstrap.Options {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	captured := &bootstrap.Options{}
	moduleBuilder = func(opts bootstrap.Options) (*apidocs.Module, error) {
		*captured = opts
		opts.LoggerProvider = nopProvider{}
		opts.ModuleOptions = append(opts.ModuleOptions, apidocs.WithFetcher(fetcher))
		return bootstrap.BuildModule(opts)
	}
	return captured
}

func TestRunWritesEveryConfiguredModule(t *testing.T) {
	fetcher := &stubFetcher{}
	withModuleBuilder(t, fetcher)
	dir := t.TempDir()

	if err := run(context.Background(), []string{"-dir", dir}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "modules"))
	if err != nil {
		t.Fatalf("read modules dir: %v", err)
	}
	if len(entries) != len(readmesync.DefaultModules) {
		t.Fatalf("expected %d files, got %d", len(readmesync.DefaultModules), len(entries))
	}
	if len(fetcher.uris) != len(readmesync.DefaultModules) {
		t.Fatalf("expected %d fetches, got %d", len(readmesync.DefaultModules), len(fetcher.uris))
	}

	data, err := os.ReadFile(filepath.Join(dir, "modules", "zf-oauth2.md"))
	if err != nil {
		t.Fatalf("read zf-oauth2: %v", err)
	}
	want := "Read the [guide](https://github.com/zfcampus/zf-oauth2/tree/master/doc/guide.md).\n"
	if string(data) != want {
		t.Fatalf("unexpected content\nwant: %q\ngot:  %q", want, string(data))
	}
}

func TestRunModuleSubset(t *testing.T) {
	fetcher := &stubFetcher{}
	withModuleBuilder(t, fetcher)
	dir := t.TempDir()

	if err := run(context.Background(), []string{"-dir", dir, "-modules", "zf-hal, zf-rest"}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "modules"))
	if err != nil {
		t.Fatalf("read modules dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 files, got %d", len(entries))
	}
}

func TestRunToleratesFetchFailures(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]bool{"zf-deploy": true}}
	withModuleBuilder(t, fetcher)
	dir := t.TempDir()

	if err := run(context.Background(), []string{"-dir", dir}); err != nil {
		t.Fatalf("expected fetch failures to be tolerated, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "modules", "zf-deploy.md")); !os.IsNotExist(err) {
		t.Fatalf("expected no file for failed module, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "modules", "zf-hal.md")); err != nil {
		t.Fatalf("expected other modules to be written, got %v", err)
	}
}

func TestRunFailsWhenModulesDirIsNotWritable(t *testing.T) {
	fetcher := &stubFetcher{}
	withModuleBuilder(t, fetcher)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "modules"), []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := run(context.Background(), []string{"-dir", dir}); err == nil {
		t.Fatal("expected write failures to fail the run")
	}
}

func TestRunRejectsInvalidModuleFlag(t *testing.T) {
	fetcher := &stubFetcher{}
	withModuleBuilder(t, fetcher)

	if err := run(context.Background(), []string{"-dir", t.TempDir(), "-modules", "../etc"}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(fetcher.uris) != 0 {
		t.Fatalf("expected no fetches, got %d", len(fetcher.uris))
	}
}

func TestRunPassesFlagsToBuilder(t *testing.T) {
	captured := withModuleBuilder(t, &stubFetcher{})
	dir := t.TempDir()

	if err := run(context.Background(), []string{"-dir", dir, "-log-level", "warn", "-modules", "zf-hal"}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if captured.Dir != dir || captured.LogLevel != "warn" {
		t.Fatalf("unexpected builder options %+v", captured)
	}
}
