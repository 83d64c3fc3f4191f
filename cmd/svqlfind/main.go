// Command svqlfind loads a pattern and a haystack design and prints every
// subgraph embedding of the pattern found inside the haystack, mirroring
// the way samples/*/main.go wires a config together and runs it to
// completion before exiting.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	svql "github.com/nickrallison/svql-go"
	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/pattern"
	"github.com/nickrallison/svql-go/yosysjson"
)

var titleCaser = cases.Title(language.English)

func toTitleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

func main() {
	needlePath := flag.String("needle", "", "path to a pattern descriptor YAML file")
	haystackPath := flag.String("haystack", "", "path to a Yosys write_json netlist file")
	module := flag.String("module", "", "module name to read out of the haystack JSON")
	superset := flag.Bool("superset", false, "allow design cells to carry extra unconstrained pins")
	dedupeGatesOnly := flag.Bool("dedupe-gates-only", false, "collapse matches that share the same mapped gate set")
	flag.Parse()

	if *needlePath == "" || *haystackPath == "" || *module == "" {
		fmt.Fprintln(os.Stderr, "usage: svqlfind -needle pattern.yaml -haystack design.json -module top")
		flag.PrintDefaults()
		os.Exit(2)
	}

	needle, err := loadNeedle(*needlePath)
	if err != nil {
		log.Fatalf("svqlfind: %v", err)
	}

	haystack, err := loadHaystack(*haystackPath, *module)
	if err != nil {
		log.Fatalf("svqlfind: %v", err)
	}

	cfgBuilder := svql.NewConfigBuilder().MatchLength(!*superset)
	if *dedupeGatesOnly {
		cfgBuilder = cfgBuilder.WithDedupe(svql.DedupeGatesOnly)
	}
	cfg := cfgBuilder.Build()

	slog.Info("svqlfind: searching", "needle", *needlePath, "haystack", *haystackPath, "module", *module)
	matches := svql.FindSubgraphs(needle, haystack, cfg)
	slog.Info("svqlfind: done", "matches", matches.Len())

	printMatches(needle, matches)
	atexit.Exit(0)
}

func loadNeedle(path string) (*netlist.Design, error) {
	desc, err := pattern.LoadDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("loading needle descriptor: %w", err)
	}
	design, err := pattern.Build(desc)
	if err != nil {
		return nil, fmt.Errorf("building needle design: %w", err)
	}
	return design, nil
}

func loadHaystack(path, module string) (*netlist.Design, error) {
	doc, err := yosysjson.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decoding haystack JSON: %w", err)
	}
	design, err := yosysjson.Convert(doc, module)
	if err != nil {
		return nil, fmt.Errorf("converting haystack module %q: %w", module, err)
	}
	return design, nil
}

func printMatches(needle *netlist.Design, matches svql.EmbeddingSet) {
	if matches.IsEmpty() {
		fmt.Println("no matches found")
		return
	}

	for i, m := range matches.Matches {
		t := table.NewWriter()
		t.SetTitle(fmt.Sprintf("Match %d", i+1))
		t.AppendHeader(table.Row{toTitleCase("pattern gate"), toTitleCase("kind"), toTitleCase("design gate")})
		for id := 0; id < needle.NumCells(); id++ {
			patRef := needle.Ref(netlist.CellID(id))
			designRef, ok := m.CellMapping[patRef]
			if !ok {
				continue
			}
			t.AppendRow(table.Row{patRef.Name(), toTitleCase(patRef.Kind().String()), designRef.Name()})
		}
		fmt.Println(t.Render())
		fmt.Println()
	}
}
