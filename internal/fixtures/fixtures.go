// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixtures holds shared English sample text for tests that need a
// realistic letter distribution or a small quadgram corpus.
package fixtures

import _ "embed"

// English is a few thousand words of plain English prose.
//
//go:embed english.txt
var English string
