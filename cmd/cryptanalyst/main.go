// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cryptanalyst CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/cryptanalyst/internal/attack"
	"github.com/pdiddy/cryptanalyst/internal/corpus"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd is the base command for the cryptanalyst CLI.
var rootCmd = &cobra.Command{
	Use:   "cryptanalyst",
	Short: "Break classical ciphers without the key",
	Long: `cryptanalyst recovers plaintext from classical ciphers (shift, affine,
polyalphabetic, transposition, polygraphic and fractionating) using letter
statistics, quadgram fitness, exact algebraic solvers and local search.

Solving needs a quadgram corpus: a text file of "ABCD 1234" lines named by
corpus.path, or a SQLite store built with "corpus import".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cryptanalyst.yaml or ~/.config/cryptanalyst/cryptanalyst.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cryptanalyst")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cryptanalyst"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// envKeys are the scalar engine settings that CRYPTANALYST_* environment
// variables override, e.g. CRYPTANALYST_ENGINE_ANALYSIS_KEEP for
// engine.analysis.keep. Per-family thresholds come from the config file.
var envKeys = []string{
	"engine.corpus.path", "engine.corpus.db", "engine.corpus.unseen_penalty",

	"engine.search.workers", "engine.search.seed",
	"engine.search.hill_climb.max_rounds",
	"engine.search.anneal.initial_temp", "engine.search.anneal.iterations",
	"engine.search.anneal.stale_limit", "engine.search.anneal.checkpoint",
	"engine.search.anneal.max_restarts", "engine.search.anneal.max_iterations",
	"engine.search.anneal.starts",

	"engine.analysis.ic_threshold", "engine.analysis.min_period", "engine.analysis.max_period",
	"engine.analysis.affine_top_k", "engine.analysis.max_transposition_length",
	"engine.analysis.exhaustive_limit", "engine.analysis.bifid_period",
	"engine.analysis.hill_crib", "engine.analysis.hill_crib_offset", "engine.analysis.keep",
}

// bindEnv maps the CRYPTANALYST_ prefix onto v. Nested keys are bound
// explicitly because Unmarshal only sees environment values for keys
// viper already knows.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("CRYPTANALYST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
}

// engineConfig layers the "engine" section of v over the defaults. The
// whole settings tree is decoded so that bound environment variables for
// nested keys are seen too.
func engineConfig(v *viper.Viper) (types.EngineConfig, error) {
	settings := struct {
		Engine types.EngineConfig `mapstructure:"engine"`
	}{Engine: types.DefaultEngineConfig()}
	if err := v.Unmarshal(&settings); err != nil {
		return types.EngineConfig{}, fmt.Errorf("reading engine config: %w", err)
	}
	return settings.Engine, nil
}

// addEngineFlags registers the flags that override engine settings.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("corpus", "", "quadgram corpus file (overrides corpus.path)")
	cmd.Flags().String("corpus-db", "", "quadgram SQLite store (overrides corpus.db)")
	cmd.Flags().Int("workers", 0, "parallel fitness evaluation (overrides search.workers)")
	cmd.Flags().Uint64("seed", 0, "random seed (overrides search.seed)")
	cmd.Flags().String("keep", "", "non-letter symbols kept in the letter stream (overrides analysis.keep)")
}

// commandConfig loads the engine config and applies any flags the user set.
func commandConfig(cmd *cobra.Command) (types.EngineConfig, error) {
	cfg, err := engineConfig(viper.GetViper())
	if err != nil {
		return cfg, err
	}
	applyEngineFlags(cmd, &cfg)
	return cfg, nil
}

func applyEngineFlags(cmd *cobra.Command, cfg *types.EngineConfig) {
	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus.Path, _ = flags.GetString("corpus")
	}
	if flags.Changed("corpus-db") {
		cfg.Corpus.DB, _ = flags.GetString("corpus-db")
	}
	if flags.Changed("workers") {
		cfg.Search.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		cfg.Search.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("keep") {
		cfg.Analysis.Keep, _ = flags.GetString("keep")
	}
}

// newEngine builds an engine whose model comes from the configured corpus
// store or file.
func newEngine(cfg types.EngineConfig) *attack.Engine {
	return attack.New(cfg,
		attack.WithLogger(logger),
		attack.WithProvider(corpus.NewProvider(cfg.Corpus)),
	)
}

// readInput returns the text to work on: the joined arguments, the file
// named by --file, or standard input when neither is given or the only
// argument is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading standard input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
