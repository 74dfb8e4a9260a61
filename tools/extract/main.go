// Command extract runs the estimate extractor over a local workbook and
// prints the resulting document as JSON. Useful for checking a vendor file
// before uploading it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	estimateapp "adsettle/internal/estimate/application"
	estimatexlsx "adsettle/internal/estimate/infrastructure/xlsx"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "", "path to the estimate workbook (.xlsx)")
	flag.Parse()

	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: extract -file estimate.xlsx")
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read file: %v\n", err)
		os.Exit(1)
	}

	reader := estimatexlsx.NewReader()
	rows, err := reader.ReadRows(filepath.Base(path), data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read workbook: %v\n", err)
		os.Exit(1)
	}

	extractor := estimateapp.NewExtractService(nil, nil)
	doc, err := extractor.Extract(filepath.Base(path), rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}
