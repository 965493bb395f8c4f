package cmd

import (
	"context"
	"fmt"

	"github.com/easypresenter/easypresenter/internal/cachemanager"
	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/tracing"
)

// runtime holds the scripture side shared by the console and the CLI
// subcommands: datastore, version selection, fetch pool and tracer.
type runtime struct {
	cfg       config.Config
	scripture *sqlite.DB // nil when the datastore could not be opened
	songs     *sqlite.DB
	selection *scripture.Selection
	books     *chapters.BookCatalog
	loader    *chapters.Loader
	pool      *chapters.Pool
	tracing   *tracing.Provider

	scriptureErr error
}

// openRuntime never fails on the scripture datastore: when it cannot be
// opened or listed the runtime starts with no versions and every
// dependent read comes back empty.
func openRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	provider, err := tracing.NewProvider(tracingConfig(cfg.Tracing))
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	rt := &runtime{cfg: cfg, tracing: provider}
	var source scriptureSource = emptyScripture{}

	db, err := sqlite.NewDB(cfg.ScripturePath(), sqlite.ScriptureSchema)
	if err != nil {
		log.Warn(log.CatDB, "Scripture database unavailable, starting without versions",
			"path", cfg.ScripturePath(), "error", err)
		rt.scriptureErr = err
	} else {
		rt.scripture = db
		source = db.ScriptureStore()
	}

	var rows []scripture.VersionRow
	if rt.scripture != nil {
		rows, err = rt.scripture.ScriptureStore().ListVersions(ctx)
		if err != nil {
			log.Warn(log.CatDB, "Listing scripture versions failed, starting without versions", "error", err)
			rows = nil
		}
	}

	sel := scripture.NewSelection(scripture.LoadVersions(rows))
	if cfg.DefaultVersion != "" {
		if _, ok := sel.SetActiveByDisplayName(cfg.DefaultVersion); !ok {
			log.Warn(log.CatVersion, "Configured default version not found", "default_version", cfg.DefaultVersion)
		}
	}
	if v, ok := sel.Version(); ok {
		log.Info(log.CatVersion, "Active version", "alias", v.Alias, "name", v.DisplayName, "versions", sel.Versions().Len())
	}

	rt.selection = sel
	rt.books = chapters.NewBookCatalog(source)
	rt.loader = chapters.NewLoader(source)
	rt.pool = chapters.NewPool(cfg.Loader.Workers, cfg.Loader.QueueSize)
	return rt, nil
}

// scriptureStore returns the open scripture store, or why there is none.
func (r *runtime) scriptureStore() (*sqlite.ScriptureStore, error) {
	if r.scripture == nil {
		return nil, fmt.Errorf("scripture database %s unavailable: %w", r.cfg.ScripturePath(), r.scriptureErr)
	}
	return r.scripture.ScriptureStore(), nil
}

type scriptureSource interface {
	chapters.BookSource
	chapters.VerseSource
}

// emptyScripture stands in for a datastore that could not be opened.
type emptyScripture struct{}

func (emptyScripture) ListBooks(context.Context, int64) ([]scripture.BookSummary, error) {
	return []scripture.BookSummary{}, nil
}

func (emptyScripture) FetchVerses(context.Context, int64, int, int) ([]scripture.Verse, error) {
	return []scripture.Verse{}, nil
}

// chapterCache builds the chapter cache delivering through dispatcher.
func (r *runtime) chapterCache(dispatcher chapters.Dispatcher) (*chapters.Cache, error) {
	store, err := cachemanager.New[scripture.ChapterKey, []scripture.Verse]("chapters", r.cfg.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("creating chapter cache: %w", err)
	}
	return chapters.NewCache(store, r.pool, dispatcher, r.tracing.Tracer()), nil
}

func (r *runtime) openSongs() (*sqlite.DB, error) {
	if r.songs != nil {
		return r.songs, nil
	}
	db, err := sqlite.NewDB(r.cfg.SongsPath(), sqlite.SongsSchema)
	if err != nil {
		return nil, err
	}
	r.songs = db
	return db, nil
}

// Close stops the pool, closes the datastores and flushes traces.
func (r *runtime) Close() {
	r.pool.Close()
	if r.songs != nil {
		_ = r.songs.Close()
	}
	if r.scripture != nil {
		_ = r.scripture.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := r.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Flushing traces failed", err)
	}
}

func tracingConfig(tc config.TracingConfig) tracing.Config {
	out := tracing.DefaultConfig()
	out.Enabled = tc.Enabled
	if tc.Exporter != "" {
		out.Exporter = tc.Exporter
	}
	out.FilePath = tc.FilePath
	if out.FilePath == "" {
		out.FilePath = config.DefaultTracesFilePath()
	}
	if tc.OTLPEndpoint != "" {
		out.OTLPEndpoint = tc.OTLPEndpoint
	}
	if tc.SampleRate > 0 {
		out.SampleRate = tc.SampleRate
	}
	return out
}
