// Command balanced is a linter that checks paired calls such as Lock and
// Unlock for balance across control flow paths.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/balanced"
)

func main() {
	singlechecker.Main(balanced.Analyzer)
}
