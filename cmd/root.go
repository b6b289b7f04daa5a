package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdc/internal/api"
	"pdc/internal/cachemanager"
	"pdc/internal/catalog"
	"pdc/internal/config"
	"pdc/internal/history"
	"pdc/internal/log"
	"pdc/internal/tracing"
	"pdc/internal/ui/studio"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	logCleanup func()
	tracer     *tracing.Provider
)

var rootCmd = &cobra.Command{
	Use:     "pdc",
	Short:   "Diagram and integration generation frontend",
	Long: `pdc is the command line and terminal UI frontend for the diagram
generation backend: it resolves businesses, templates and strategies from the
catalog, talks to the backend API, and renders Mermaid locally.`,
	Version: version,
	RunE:    runStudio,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pdc/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "",
		"catalog file (default: built-in catalog)")
	rootCmd.PersistentFlags().String("env", "",
		"backend environment: auto, browser, desktop")
	rootCmd.PersistentFlags().Bool("debug", false,
		"verbose logging")

	_ = viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("env"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalog_path", defaults.CatalogPath)
	viper.SetDefault("history_path", defaults.HistoryPath)
	viper.SetDefault("environment", defaults.Environment)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.show_latency", defaults.UI.ShowLatency)
	viper.SetDefault("render.binary", defaults.Render.Binary)
	viper.SetDefault("render.debounce_ms", defaults.Render.DebounceMs)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	// PDC_DEBUG=1, PDC_ENVIRONMENT=desktop, PDC_UI_MARKDOWN_STYLE=light, etc.
	viper.SetEnvPrefix("PDC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pdc/config.yaml (current directory)
		// 2. ~/.config/pdc/config.yaml (user config)
		if _, err := os.Stat(".pdc/config.yaml"); err == nil {
			viper.SetConfigFile(".pdc/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pdc"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "pdc", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)

	initLogging()
}

func initLogging() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cleanup, err := log.Init(filepath.Join(home, ".config", "pdc", "pdc.log"))
	if err != nil {
		return
	}
	logCleanup = cleanup
	if cfg.Debug {
		log.SetMinLevel(log.LevelDebug)
	} else {
		log.SetMinLevel(log.LevelInfo)
	}
}

// loadRegistry validates and loads the configured catalog, or the built-in
// one when no path is set.
func loadRegistry() (*catalog.Registry, error) {
	reg, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return reg, nil
}

// newClient builds the backend API client from config, with tracing and the
// artifact cache wired in.
func newClient() (*api.Client, error) {
	var env api.Environment
	switch cfg.Environment {
	case "", "auto":
		env = api.DetectEnvironment()
	case "browser":
		env = api.EnvBrowserProxy
	case "desktop":
		env = api.EnvEmbeddedDesktop
	default:
		return nil, fmt.Errorf("invalid environment %q (valid: auto, browser, desktop)", cfg.Environment)
	}

	opts := []api.Option{
		api.WithArtifactCache(
			cachemanager.NewInMemoryCacheManager[string, api.Artifact](
				"artifacts", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
			30*time.Second),
	}

	if cfg.Tracing.Enabled {
		tcfg := cfg.Tracing
		if tcfg.FilePath == "" {
			tcfg.FilePath = config.DefaultTracesFilePath()
		}
		provider, err := tracing.NewProvider(tcfg)
		if err != nil {
			log.ErrorErr(log.CatConfig, "Tracing init failed, continuing without", err)
		} else {
			tracer = provider
			opts = append(opts, api.WithTracer(provider.Tracer()))
		}
	}

	return api.New(env, opts...), nil
}

// openHistory opens the run history store, creating parent directories.
// A failure disables history rather than aborting the command.
func openHistory() *history.Store {
	path := cfg.HistoryPath
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.ErrorErr(log.CatDB, "Cannot create history directory", err, "path", path)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.ErrorErr(log.CatDB, "Cannot open history store", err, "path", path)
		return nil
	}
	return store
}

func runStudio(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	store := openHistory()
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	model := studio.New(cmd.Context(), client, reg, store, cfg.UI.MarkdownStyle, cfg.UI.ShowLatency)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

func shutdown() {
	if tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracer.Shutdown(ctx)
	}
	if logCleanup != nil {
		logCleanup()
	}
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
