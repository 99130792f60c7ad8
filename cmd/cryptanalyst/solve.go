// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cryptanalyst/internal/attack"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

var solveCmd = &cobra.Command{
	Use:   "solve [ciphertext...]",
	Short: "Recover the plaintext of a ciphertext without its key",
	Long: `Solve attacks a ciphertext under one cipher family, or under several
families at once when --family is auto (the default). In auto mode every
family runs concurrently and the solutions are ranked by quadgram fitness
per quadgram; families that fail are reported as warnings.

The ciphertext is read from the arguments, from --file, or from standard
input. Case, spacing and punctuation are restored in the plaintext for
families that keep letter positions.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().String("family", "auto", "cipher family, or auto to try several")
	solveCmd.Flags().String("families", "", "comma-separated families for auto mode (default: all)")
	solveCmd.Flags().String("file", "", "read the ciphertext from a file")
	solveCmd.Flags().String("report", "", "write a YAML report of the run to this path")
	solveCmd.Flags().String("format", "table", "output format: table or json")
	addEngineFlags(solveCmd)

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	familyName, _ := cmd.Flags().GetString("family")
	familyList, _ := cmd.Flags().GetString("families")
	reportPath, _ := cmd.Flags().GetString("report")
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q: use table or json", format)
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	engine := newEngine(cfg)
	out := cmd.OutOrStdout()

	var (
		result   attack.AutoOutput
		families []types.Family
	)
	if familyName == "" || strings.EqualFold(familyName, "auto") {
		families, err = parseFamilies(familyList)
		if err != nil {
			return err
		}
		result, err = engine.Auto(cmd.Context(), raw, families, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	} else {
		family, err := types.ParseFamily(familyName)
		if err != nil {
			return err
		}
		families = []types.Family{family}
		sol, err := engine.Solve(cmd.Context(), family, raw)
		if err != nil {
			if sol.Key == nil {
				return err
			}
			logger.Warn("returning partial solution", zap.String("family", string(family)), zap.Error(err))
		}
		result.Solutions = []types.Solution{sol}
	}

	if reportPath != "" {
		if err := attack.WriteReport(reportPath, attack.NewReport(raw, families, result, cfg.Search.Seed)); err != nil {
			return err
		}
		logger.Debug("wrote report", zap.String("path", reportPath))
	}

	if format == "json" {
		return attack.FormatJSON(result, out)
	}
	if len(families) == 1 && len(result.Solutions) == 1 {
		writeSolution(out, result.Solutions[0])
		return nil
	}
	attack.FormatTable(result, out)
	return nil
}

// parseFamilies reads a comma-separated family list. An empty list means
// every family.
func parseFamilies(list string) ([]types.Family, error) {
	var out []types.Family
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := types.ParseFamily(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// writeSolution prints one solution in full.
func writeSolution(w io.Writer, s types.Solution) {
	fmt.Fprintf(w, "family:       %s\n", s.Family)
	fmt.Fprintf(w, "key:          %s\n", s.KeyText)
	fmt.Fprintf(w, "fitness:      %.3f (%.4f per quadgram)\n", s.Fitness, s.PerQuadgram)
	fmt.Fprintf(w, "chi-squared:  %.2f\n", s.ChiSquared)
	fmt.Fprintf(w, "converged:    %t\n", s.Converged)
	if s.Degenerate {
		fmt.Fprintln(w, "degenerate:   true")
	}
	if s.Iterations > 0 {
		fmt.Fprintf(w, "iterations:   %d (%d restarts)\n", s.Iterations, s.Restarts)
	}
	for _, n := range s.Notes {
		fmt.Fprintf(w, "note:         %s\n", n)
	}
	fmt.Fprintf(w, "\n%s\n", s.Plaintext)
}
