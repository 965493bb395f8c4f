package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List scripture versions in priority order",
	Long: `List the versions in the scripture database, classified and sorted the way
the console cycles through them. The active version is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		return writeVersions(cmd.OutOrStdout(), rt.selection)
	},
}

var booksVersion string

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the books of a version with their chapter counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		if booksVersion != "" {
			if _, ok := rt.selection.SetActiveByDisplayName(booksVersion); !ok {
				return fmt.Errorf("unknown version %q", booksVersion)
			}
		}
		v, ok := rt.selection.Version()
		if !ok {
			return fmt.Errorf("no scripture versions in %s", cfg.ScripturePath())
		}

		books, err := rt.books.Books(cmd.Context(), v.ID)
		if err != nil {
			return err
		}
		return writeBooks(cmd.OutOrStdout(), books)
	},
}

func init() {
	booksCmd.Flags().StringVar(&booksVersion, "version", "", "version display name (default: the active version)")
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(booksCmd)
}

func writeVersions(w io.Writer, sel *scripture.Selection) error {
	active, _ := sel.Version()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tALIAS\tNAME\tSTORED AS")
	for _, v := range sel.Versions().Versions() {
		marker := ""
		if v.ID == active.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, v.Alias, v.DisplayName, v.RawName)
	}
	return tw.Flush()
}

func writeBooks(w io.Writer, books []scripture.BookSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tBOOK\tCHAPTERS")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", b.Number, b.Name, b.MaxChapter)
	}
	return tw.Flush()
}
