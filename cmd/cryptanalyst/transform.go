// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cryptanalyst/internal/attack"
	"github.com/pdiddy/cryptanalyst/internal/cipher"
	"github.com/pdiddy/cryptanalyst/pkg/types"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [plaintext...]",
	Short: "Encipher text with a known key",
	Long: `Encrypt applies a cipher family with the key given by --key. Formatting
is kept for families that keep letter positions; transpositions print the
raw letter stream. See "decrypt --help" for key forms.`,
	RunE: runEncrypt,
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [ciphertext...]",
	Short: "Decipher text with a known key",
	Long: `Decrypt applies the inverse of a cipher family with the key given by
--key, or with the best key of a report written by "solve --report".

Key forms:
  caesar            3
  affine            5,8
  vigenere          lemon (also beaufort, autokey)
  substitution      26-letter alphabet or keyword
  duo-substitution  rows/cols
  scytale           4
  columnar          2,0,1 or keyword
  playfair          keyword or 25-letter square
  bifid             keyword[:period]
  foursquare        upper,lower
  hill              row-major matrix entries
  affine-vigenere   a:keyword
  scytale-vigenere  turns:keyword`,
	RunE: runDecrypt,
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().String("family", "", "cipher family")
		c.Flags().String("key", "", "key in the family's text form")
		c.Flags().String("file", "", "read the text from a file")
		addEngineFlags(c)
	}
	decryptCmd.Flags().String("from-report", "", "use the best key of a solve report")
	decryptCmd.Flags().Int("rank", 1, "solution rank to use with --from-report")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	key, err := keyFromFlags(cmd)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	ct, err := newEngine(cfg).Encrypt(cmd.Context(), key, raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ct)
	return nil
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	var (
		key types.Key
		raw string
		err error
	)
	if reportPath, _ := cmd.Flags().GetString("from-report"); reportPath != "" {
		rank, _ := cmd.Flags().GetInt("rank")
		key, raw, err = keyFromReport(reportPath, rank)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			raw, err = readInput(cmd, args)
		}
	} else {
		key, err = keyFromFlags(cmd)
		if err == nil {
			raw, err = readInput(cmd, args)
		}
	}
	if err != nil {
		return err
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	sol, err := newEngine(cfg).Decrypt(cmd.Context(), key, raw)
	if err != nil {
		return err
	}
	for _, n := range sol.Notes {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", n)
	}
	fmt.Fprintln(cmd.OutOrStdout(), sol.Plaintext)
	return nil
}

func keyFromFlags(cmd *cobra.Command) (types.Key, error) {
	familyName, _ := cmd.Flags().GetString("family")
	keyText, _ := cmd.Flags().GetString("key")
	if familyName == "" || keyText == "" {
		return nil, errors.New("--family and --key are required")
	}
	family, err := types.ParseFamily(familyName)
	if err != nil {
		return nil, err
	}
	return cipher.ParseKey(family, keyText)
}

// keyFromReport returns the key of the solution at rank (1-based) and the
// report's ciphertext.
func keyFromReport(path string, rank int) (types.Key, string, error) {
	r, err := attack.ReadReport(path)
	if err != nil {
		return nil, "", err
	}
	if rank < 1 || rank > len(r.Solutions) {
		return nil, "", fmt.Errorf("report has %d solutions, no rank %d", len(r.Solutions), rank)
	}
	s := r.Solutions[rank-1]
	if s.Key == nil {
		return nil, "", fmt.Errorf("rank %d (%s) has no usable key %q", rank, s.Family, s.KeyText)
	}
	return s.Key, r.Ciphertext, nil
}
