// Command linter runs the forbiddencalls analyzer over the given packages:
//
//	go run ./cmd/linter ./...
package main

import (
	"github.com/MikhailRaia/mini-shortener/cmd/linter/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
