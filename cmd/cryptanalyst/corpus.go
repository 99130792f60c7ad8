// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cryptanalyst/internal/corpus"
	"github.com/pdiddy/cryptanalyst/internal/quadgram"
)

const defaultFetchTimeout = 5 * time.Minute

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Build and manage quadgram corpora",
	Long: `Corpus builds the quadgram statistics the solvers score candidates with.
A corpus is either a text file of "ABCD 1234" lines (corpus.path) or a
SQLite store (corpus.db) that sums the counts of many imported sources.`,
}

// --- build subcommand ---

var corpusBuildCmd = &cobra.Command{
	Use:   "build [text files...]",
	Short: "Count the quadgrams of English text into a corpus file",
	Long: `Build counts every quadgram of the given text files (or standard input)
and writes them in the "ABCD 1234" format, most frequent first. Windows
span word boundaries; case and non-letters are ignored.`,
	RunE: runCorpusBuild,
}

func runCorpusBuild(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")

	var readers []io.Reader
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		readers = append(readers, f, strings.NewReader("\n"))
	}
	if len(readers) == 0 {
		readers = append(readers, cmd.InOrStdin())
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	n, err := buildCorpus(io.MultiReader(readers...), w)
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d quadgrams to %s\n", n, outPath)
	}
	return nil
}

// buildCorpus counts the quadgrams of r and writes them in corpus format.
// It returns the number of distinct quadgrams written.
func buildCorpus(r io.Reader, w io.Writer) (int, error) {
	counts, err := quadgram.Count(r)
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, quadgram.ErrEmptyCorpus
	}
	if err := quadgram.WriteCounts(w, counts); err != nil {
		return 0, fmt.Errorf("writing corpus: %w", err)
	}
	return len(counts), nil
}

// --- import subcommand ---

var corpusImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import corpus or text files into the SQLite store",
	Long: `Import adds each file to the quadgram store named by corpus.db. Files
in the "ABCD 1234" format are stored as counts; other files are counted as
English text. Files unchanged since their last import are skipped, and a
changed file replaces its previous counts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(cmd.Context(), args, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed import", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the SQLite store as a corpus file, YAML or JSON",
	Long: `Export writes the combined counts of the store, most frequent first.
The text format can be used directly as corpus.path; yaml and json add the
log10 probability of each quadgram.`,
	RunE: runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if outPath == "" {
		return store.Export(cmd.Context(), cmd.OutOrStdout(), format)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := store.Export(cmd.Context(), f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outPath)
	return nil
}

// --- fetch subcommand ---

var corpusFetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a quadgram corpus file",
	Long: `Fetch downloads a corpus to --out (default corpus.path), retrying rate
limiting and server errors with exponential backoff. The download is
checked to parse as a corpus before it is reported as usable.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusFetch,
}

func runCorpusFetch(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	dest, _ := cmd.Flags().GetString("out")
	if dest == "" {
		dest = cfg.Corpus.Path
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}

	client := &http.Client{Timeout: timeout}
	n, err := corpus.Fetch(cmd.Context(), client, args[0], dest, logger)
	if err != nil {
		return err
	}
	m, err := quadgram.LoadFile(dest, cfg.Corpus.UnseenPenalty)
	if err != nil {
		logger.Warn("downloaded file is not a usable corpus", zap.String("path", dest), zap.Error(err))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %s (%d bytes, %d quadgrams)\n", dest, n, m.Len())
	return nil
}

// --- info subcommand ---

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the SQLite store",
	RunE:  runCorpusInfo,
}

func runCorpusInfo(cmd *cobra.Command, args []string) error {
	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := store.Info(cmd.Context())
	if err != nil {
		return err
	}
	var entries []quadgram.Entry
	if top > 0 {
		if entries, err = store.Top(cmd.Context(), top); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			corpus.Info
			Top []quadgram.Entry `json:"top,omitempty"`
		}{info, entries})
	}
	writeInfo(out, info, entries)
	return nil
}

func writeInfo(w io.Writer, info corpus.Info, top []quadgram.Entry) {
	fmt.Fprintf(w, "store:      %s\n", info.Path)
	fmt.Fprintf(w, "quadgrams:  %d distinct, %d total\n", info.Quadgrams, info.Total)
	if len(info.Sources) == 0 {
		fmt.Fprintln(w, "\nNo sources imported.")
		return
	}

	fmt.Fprintf(w, "\n%-6s  %-10s  %-10s  %s\n", "Kind", "Quadgrams", "Total", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, s := range info.Sources {
		fmt.Fprintf(w, "%-6s  %-10d  %-10d  %s\n", s.Kind, s.Quadgrams, s.Total, s.Path)
	}

	if len(top) > 0 {
		fmt.Fprintln(w)
		for i, e := range top {
			fmt.Fprintf(w, "%3d. %s %d\n", i+1, e.Gram, e.Count)
		}
	}
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*corpus.Store, error) {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Corpus.DB == "" {
		return nil, fmt.Errorf("no corpus store configured: set corpus.db or pass --corpus-db")
	}
	return corpus.NewStore(cfg.Corpus)
}

func storeFlags(cmd *cobra.Command) {
	cmd.Flags().String("corpus-db", "", "quadgram SQLite store (overrides corpus.db)")
}

func init() {
	corpusBuildCmd.Flags().String("out", "", "write the corpus to this file (default: standard output)")

	storeFlags(corpusImportCmd)

	storeFlags(corpusExportCmd)
	corpusExportCmd.Flags().String("format", corpus.FormatText, "export format: text, yaml or json")
	corpusExportCmd.Flags().String("out", "", "write to this file (default: standard output)")

	addEngineFlags(corpusFetchCmd)
	corpusFetchCmd.Flags().String("out", "", "destination file (default: corpus.path)")
	corpusFetchCmd.Flags().Duration("timeout", 0, "HTTP timeout (default 5m)")

	storeFlags(corpusInfoCmd)
	corpusInfoCmd.Flags().Int("top", 0, "also list the n most frequent quadgrams")
	corpusInfoCmd.Flags().Bool("json", false, "output as JSON")

	corpusCmd.AddCommand(corpusBuildCmd)
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusExportCmd)
	corpusCmd.AddCommand(corpusFetchCmd)
	corpusCmd.AddCommand(corpusInfoCmd)

	rootCmd.AddCommand(corpusCmd)
}
