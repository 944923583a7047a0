// Package data embeds the built-in knowledge-base CSV files.
package data

import "embed"

// FS holds every built-in data source, addressed by its registry locator.
//
//go:embed *.csv stacks/*.csv
var FS embed.FS
