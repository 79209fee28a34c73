// embed.go declares the embedded data files.
// It must stay in the repository root next to data/, since //go:embed can
// only reach files below the declaring package.
package main

import "embed"

//go:embed data/scenarios.yaml
var dataFS embed.FS
