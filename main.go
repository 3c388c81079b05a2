// =============================================================================
// Standard 18 Reader - Main Entry Point
// =============================================================================
//
// USAGE:
//   std18 parse FILE   - Decode one file and print its records
//   std18 process      - Convert every file in the input directory
//   std18 layouts      - Show record column layouts
//   std18 version      - Display the application version
//
// LAYOUT:
//   cmd/           : CLI command definitions (Cobra)
//   internal/      : Decoding, conversion and supporting packages
//   pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/bacs-std18/cmd"
)

func main() {
	cmd.Execute()
}
