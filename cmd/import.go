package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/tracing"
	"github.com/easypresenter/easypresenter/internal/xmlimport"
)

var (
	importFile    string
	importName    string
	importReplace bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a Zefania XML bible into the scripture database",
	Long: `Import a Zefania XML bible as a new scripture version.

The version is stored under the biblename attribute of the file unless --name
is given. Importing a name that already exists fails unless --replace is set,
in which case its verses are replaced and its id kept.

Examples:
  easypresenter import --file rvr1960.xml
  easypresenter import --file ntv.xml --name "NTV"
  easypresenter import --file ntv.xml --name "NTV" --replace`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile) //nolint:gosec // G304: operator-chosen import file
		if err != nil {
			return fmt.Errorf("opening %s: %w", importFile, err)
		}
		defer f.Close()

		rt, err := openRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		return importBible(cmd.Context(), cmd.OutOrStdout(), rt, f, importName, importReplace)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Zefania XML file to import")
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "version name (default: the file's biblename)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the verses of an existing version with the same name")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func importBible(ctx context.Context, w io.Writer, rt *runtime, r io.Reader, name string, replace bool) (err error) {
	ctx, span := rt.tracing.Tracer().Start(ctx, tracing.SpanScriptureImport)
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
		}
		span.End()
	}()

	store, err := rt.scriptureStore()
	if err != nil {
		return err
	}

	bible, err := xmlimport.ParseZefania(r)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(bible.Name)
	}
	if name == "" {
		return errors.New("the file has no biblename; pass --name")
	}

	records := bible.Records()
	span.SetAttributes(
		attribute.String(tracing.AttrVersion, name),
		attribute.Int(tracing.AttrBookCount, len(bible.Books)),
		attribute.Int(tracing.AttrVerseCount, len(records)),
	)
	span.AddEvent("parsed", trace.WithAttributes(attribute.Int(tracing.AttrVerseCount, len(records))))

	id, err := store.ImportVersion(ctx, name, records, replace)
	if errors.Is(err, sqlite.ErrVersionExists) {
		return fmt.Errorf("%w; pass --replace to overwrite it", err)
	}
	if err != nil {
		return err
	}

	log.Info(log.CatImport, "Imported version", "name", name, "id", id, "books", len(bible.Books), "verses", len(records))
	fmt.Fprintf(w, "imported %q (id %d): %d books, %d verses\n", name, id, len(bible.Books), len(records))
	return nil
}
