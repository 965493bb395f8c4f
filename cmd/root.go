package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/easypresenter/easypresenter/internal/app"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/projector"
	"github.com/easypresenter/easypresenter/internal/songs"
	"github.com/easypresenter/easypresenter/internal/watcher"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply does not land in the query line.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".easypresenter/config.yaml"
	debugLogPath    = "debug.log"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "easypresenter",
	Short: "A terminal console for projecting scripture and songs",
	Long: `A terminal operator console for church services. Type a reference such as
"juan 3 16" to project verses from the local scripture database, or switch to
songs mode to project lyrics one stanza at a time.`,
	Version:       version,
	SilenceUsage:  true,
	RunE:          runApp,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Validate(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/easypresenter/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to "+debugLogPath+" (also EASYPRESENTER_DEBUG)")
	rootCmd.PersistentFlags().String("data-dir", "",
		"directory holding biblias.db and cantos.db")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading the song list when the song database changes")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("scripture_db", defaults.ScriptureDB)
	viper.SetDefault("songs_db", defaults.SongsDB)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("loader.workers", defaults.Loader.Workers)
	viper.SetDefault("loader.queue_size", defaults.Loader.QueueSize)
	viper.SetDefault("ui.show_verse_numbers", defaults.UI.ShowVerseNumbers)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .easypresenter/config.yaml (current directory)
		// 2. ~/.config/easypresenter/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "easypresenter"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if path := userConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, continue with defaults
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	if !debug && os.Getenv("EASYPRESENTER_DEBUG") == "" {
		return
	}
	if _, err := log.InitWithTeaLog(debugLogPath, "easypresenter"); err != nil {
		fmt.Fprintf(os.Stderr, "could not open %s: %v\n", debugLogPath, err)
		debug = false
		return
	}
	debug = true
	log.Info(log.CatConfig, "Config loaded", "path", viper.ConfigFileUsed(), "data_dir", cfg.DataDir)
}

// userConfigPath is where the default template is written when no config
// file exists.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "easypresenter", "config.yaml")
}

func runApp(cmd *cobra.Command, args []string) error {
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	rt, err := openRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	dispatcher := app.NewProgramDispatcher()
	chapterCache, err := rt.chapterCache(dispatcher)
	if err != nil {
		return err
	}

	var songStore songs.Repository
	songsDB, err := rt.openSongs()
	if err != nil {
		// Scripture mode still works without the song library.
		log.Warn(log.CatDB, "Song database unavailable, songs mode disabled", "path", cfg.SongsPath(), "error", err)
	} else {
		songStore = songsDB.SongStore()
	}

	proj := projector.Projector(projector.Nop{})
	if cfg.Projector.FilePath != "" {
		fp, err := projector.NewFileProjector(cfg.Projector.FilePath)
		if err != nil {
			return fmt.Errorf("opening projection output: %w", err)
		}
		proj = fp
	}

	var w *watcher.Watcher
	if cfg.AutoRefresh && songsDB != nil {
		wcfg := watcher.DefaultConfig(songsDB.Path())
		if cfg.AutoRefreshDebounce > 0 {
			wcfg.Debounce = cfg.AutoRefreshDebounce
		}
		w, err = watcher.New(wcfg)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			// The console works without auto-refresh.
			log.ErrorErr(log.CatWatcher, "Song watcher unavailable", err, "path", songsDB.Path())
			w = nil
		}
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = userConfigPath()
	}

	model := app.New(app.Services{
		Config:     &cfg,
		ConfigPath: configPath,
		Selection:  rt.selection,
		Books:      rt.books,
		Loader:     rt.loader,
		Cache:      chapterCache,
		Songs:      songStore,
		Projector:  proj,
		Watcher:    w,
		Debug:      debug,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	dispatcher.Bind(p.Send)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// shutdownTimeout bounds trace flushing on exit.
const shutdownTimeout = 5 * time.Second
