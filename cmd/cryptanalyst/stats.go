// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/internal/exact"
	"github.com/pdiddy/cryptanalyst/internal/normalize"
	"github.com/pdiddy/cryptanalyst/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats [text...]",
	Short: "Print letter statistics of a text",
	Long: `Stats prints the letter frequencies, index of coincidence, chi-squared
distance from English, the detected polyalphabetic period and the most
likely Caesar shift. These are the measurements the solvers start from,
and they help pick a family before solving.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("file", "", "read the text from a file")
	statsCmd.Flags().Int("top", 26, "number of letters in the frequency table")
	addEngineFlags(statsCmd)

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")

	letters := normalize.Letters(raw, []rune(cfg.Analysis.Keep)...)
	opts := stats.PeriodOptions{
		MinPeriod: cfg.Analysis.MinPeriod,
		MaxPeriod: cfg.Analysis.MaxPeriod,
		Threshold: cfg.Analysis.ICThreshold,
	}
	writeStats(cmd.OutOrStdout(), letters, opts, top)
	return nil
}

func writeStats(w io.Writer, letters string, opts stats.PeriodOptions, top int) {
	fmt.Fprintf(w, "letters:      %d\n", len(letters))
	if letters == "" {
		return
	}
	fmt.Fprintf(w, "IC:           %.4f\n", stats.IndexOfCoincidence(letters))
	fmt.Fprintf(w, "chi-squared:  %.2f\n", stats.ChiSquared(letters))

	p := stats.DetectPeriod(cipher.LettersOnly(letters), opts)
	if p.Degenerate {
		fmt.Fprintln(w, "period:       none detected")
	} else {
		fmt.Fprintf(w, "period:       %d (mean column IC %.4f)\n", p.Length, p.AverageIC)
	}
	fmt.Fprintf(w, "caesar shift: %d (modal)\n", exact.CaesarModal(letters))

	fmt.Fprintln(w, "\nLetter  Percent  English")
	fmt.Fprintln(w, strings.Repeat("-", 24))
	for i, f := range stats.Frequency(letters).Ranked() {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "%-6c  %6.2f%%  %6.2f%%\n", f.Symbol, f.Frequency, stats.EnglishFrequency(f.Symbol))
	}
}
