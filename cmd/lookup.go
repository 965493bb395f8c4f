package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/scripture"
)

// errUnresolved is returned for queries that do not name a passage.
var errUnresolved = errors.New("query does not resolve to a passage")

const lookupTimeout = 10 * time.Second

var lookupVersion string

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Print the verses a console query would project",
	Long: `Resolve a query such as "juan 3 16" and print the verses from the given
verse to the end of the chapter, loaded through the same cache and worker
pool as the console.

Examples:
  easypresenter lookup juan 3 16
  easypresenter lookup 1 corintios 13
  easypresenter lookup --version "Nueva Traducción Viviente" salmos 23`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		if lookupVersion != "" {
			if _, ok := rt.selection.SetActiveByDisplayName(lookupVersion); !ok {
				return fmt.Errorf("unknown version %q", lookupVersion)
			}
		}
		return lookup(cmd.Context(), cmd.OutOrStdout(), rt, strings.Join(args, " "))
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupVersion, "version", "", "version display name (default: the active version)")
	rootCmd.AddCommand(lookupCmd)
}

// lookup resolves query and writes the filtered passage to w. Deliveries run
// on this goroutine through a LoopDispatcher.
func lookup(ctx context.Context, w io.Writer, rt *runtime, query string) error {
	ref, ok := scripture.NewParser(scripture.NewBookIndex()).Parse(query)
	if !ok {
		return fmt.Errorf("%q: %w", query, errUnresolved)
	}

	dispatcher := chapters.NewLoopDispatcher()
	cache, err := rt.chapterCache(dispatcher)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	var passage chapters.Passage
	err = chapters.RequestPassage(ctx, cache, rt.selection, ref, 1, rt.loader.Fetch, func(p chapters.Passage) {
		passage = p
		cancel()
	})
	if err != nil {
		return err
	}
	if err := dispatcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return fmt.Errorf("loading %s: %w", ref.Title(), err)
	}

	v, _ := rt.selection.Version()
	if len(passage.Verses) == 0 {
		return fmt.Errorf("%s (%s) has no verse %d", ref.Title(), v.Alias, ref.VerseFrom)
	}

	fmt.Fprintf(w, "%s (%s)\n", ref.Title(), v.Alias)
	for _, verse := range passage.Verses {
		fmt.Fprintf(w, "%3d  %s\n", verse.Number, verse.Text)
	}
	return nil
}
