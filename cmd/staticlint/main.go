// Package main запускает multichecker для ретранслятора.
//
// Он включает:
// - анализаторы go/analysis/passes: shadow, structtag, nilness, printf, errorsas
// - все SA-анализаторы staticcheck
// - S1000 из simple и U1000 из unused
// - bodyclose, чтобы не забывать закрывать тела ответов провайдера
// - собственный анализатор noexit (запрещает os.Exit в main)
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"

	"github.com/Totarae/URLRelay/cmd/staticlint/noexit"
)

// simpleChecks проверки из набора simple.
var simpleChecks = map[string]bool{
	"S1000": true, // select с одним case
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		errorsas.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if simpleChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}

	return append(list, unused.Analyzer.Analyzer, bodyclose.Analyzer, noexit.Analyzer)
}

func main() {
	multichecker.Main(analyzers()...)
}
