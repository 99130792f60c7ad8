//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Corpus groups the quadgram corpus targets. They run the CLI built by Build.
type Corpus mg.Namespace

var cli = filepath.Join(binDir, binName)

// Build counts every text file under corpora/text into english_quadgrams.txt.
func (Corpus) Build() error {
	mg.Deps(Build, Init)
	texts, err := filepath.Glob(filepath.Join("corpora", "text", "*.txt"))
	if err != nil {
		return err
	}
	args := append([]string{"corpus", "build", "--out", "english_quadgrams.txt"}, texts...)
	return sh.RunV(cli, args...)
}

// Import adds every text file under corpora/text to the SQLite store.
func (Corpus) Import() error {
	mg.Deps(Build, Init)
	texts, err := filepath.Glob(filepath.Join("corpora", "text", "*.txt"))
	if err != nil {
		return err
	}
	args := append([]string{"corpus", "import", "--corpus-db", filepath.Join("corpora", "index", "quadgrams.db")}, texts...)
	return sh.RunV(cli, args...)
}

// Fetch downloads a corpus file from url into english_quadgrams.txt.
func (Corpus) Fetch(url string) error {
	mg.Deps(Build)
	return sh.RunV(cli, "corpus", "fetch", "--out", "english_quadgrams.txt", url)
}
