// Command fetch-readmes refreshes the module READMEs under modules/ from
// their upstream repositories. It runs with no arguments; flags only
// override the defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-apidocs"
	"github.com/goliatone/go-apidocs/cmd/internal/bootstrap"
	"github.com/goliatone/go-command/dispatcher"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("fetch readmes: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fetch-readmes", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Documentation root; READMEs are written to <dir>/modules")
	modules := fs.String("modules", "", "Comma separated module subset (defaults to every configured module)")
	logProvider := fs.String("log-provider", "", "Logging provider: console or gologger")
	logLevel := fs.String("log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Dir:         *dir,
		LogProvider: *logProvider,
		LogLevel:    *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	sub := dispatcher.SubscribeCommand(module.SyncHandler())
	defer sub.Unsubscribe()

	if err := dispatcher.Dispatch(ctx, apidocs.SyncReadmesCommand{Modules: bootstrap.SplitList(*modules)}); err != nil {
		return fmt.Errorf("sync readmes: %w", err)
	}
	return nil
}
