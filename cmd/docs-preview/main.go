// Command docs-preview prints a mirrored module README, rendered to HTML by
// default, or lists the documented modules.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-apidocs/cmd/internal/bootstrap"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("docs preview: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("docs-preview", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Documentation root")
	moduleName := fs.String("module", "", "Module to preview; lists documented modules when empty")
	renderHTML := fs.Bool("render-html", true, "Render the markdown body into HTML")
	safe := fs.Bool("safe", false, "Omit raw HTML when rendering")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{Dir: *dir, LogLevel: "warn"})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	if strings.TrimSpace(*moduleName) == "" {
		modules, err := module.DocumentedModules(ctx)
		if err != nil {
			return fmt.Errorf("list modules: %w", err)
		}
		for _, name := range modules {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	file := path.Join(module.Container().Config.Documents.ModulesDir, *moduleName+".md")
	doc, err := module.Documents().Load(ctx, file, interfaces.LoadOptions{
		Parser: interfaces.ParseOptions{SafeMode: *safe},
	})
	if err != nil {
		return fmt.Errorf("load %s: %w", *moduleName, err)
	}

	fmt.Fprintf(out, "Path: %s\nModule: %s\nChecksum: %x\n\n", doc.FilePath, doc.Module, doc.Checksum)

	if len(doc.FrontMatter.Raw) > 0 {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(out, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if *renderHTML {
		fmt.Fprintf(out, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(out, "Markdown Body:\n%s\n", string(doc.Body))
	}
	return nil
}
