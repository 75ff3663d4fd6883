package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/byigitt/kaiban/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
