package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
	"github.com/easypresenter/easypresenter/internal/songs"
)

var (
	songTitle string
	songFile  string
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "Manage the song database",
}

var songsListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List songs whose title contains filter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSongs(func(db *sqlite.DB) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			list, err := db.SongStore().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return writeSongs(cmd.OutOrStdout(), list)
		})
	},
}

var songsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a song from a lyrics file",
	Long: `Add a song. Stanzas in the lyrics file are separated by blank lines and
each becomes one slide. Use --file - to read the lyrics from stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lyrics, err := readLyrics(cmd.InOrStdin(), songFile)
		if err != nil {
			return err
		}
		if len(songs.SplitStanzas(lyrics)) == 0 {
			return fmt.Errorf("%s has no stanzas", songFile)
		}
		return withSongs(func(db *sqlite.DB) error {
			id, err := db.SongStore().Add(cmd.Context(), songTitle, lyrics)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q (id %d)\n", strings.TrimSpace(songTitle), id)
			return nil
		})
	},
}

var songsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a song and its slides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid song id %q", args[0])
		}
		return withSongs(func(db *sqlite.DB) error {
			if err := db.SongStore().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed song %d\n", id)
			return nil
		})
	},
}

func init() {
	songsAddCmd.Flags().StringVarP(&songTitle, "title", "t", "", "song title")
	songsAddCmd.Flags().StringVarP(&songFile, "file", "f", "", "lyrics file, or - for stdin")
	_ = songsAddCmd.MarkFlagRequired("title")
	_ = songsAddCmd.MarkFlagRequired("file")

	songsCmd.AddCommand(songsListCmd, songsAddCmd, songsRmCmd)
	rootCmd.AddCommand(songsCmd)
}

// withSongs opens only the song database; song commands never touch
// scripture.
func withSongs(fn func(db *sqlite.DB) error) error {
	db, err := sqlite.NewDB(cfg.SongsPath(), sqlite.SongsSchema)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func readLyrics(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading lyrics: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-chosen lyrics file
	if err != nil {
		return "", fmt.Errorf("reading lyrics: %w", err)
	}
	return string(data), nil
}

func writeSongs(w io.Writer, list []songs.Song) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tKEY\tCATEGORY")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Title, s.Key, s.Category)
	}
	return tw.Flush()
}
