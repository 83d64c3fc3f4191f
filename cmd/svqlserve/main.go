// Command svqlserve exposes subgraph matching over HTTP: POST a needle
// descriptor and a haystack Yosys JSON document to /match and get back
// every embedding found. It follows the same "wire a config, run it,
// atexit.Exit(0) on shutdown" shape as samples/*/main.go, swapping the
// single batch run for a long-lived gorilla/mux router.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tebeka/atexit"

	svql "github.com/nickrallison/svql-go"
	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/pattern"
	"github.com/nickrallison/svql-go/yosysjson"
)

// matchRequest is the POST /match body: a pattern descriptor (inline YAML
// text) matched against one module of a Yosys JSON netlist (inline JSON
// text).
type matchRequest struct {
	PatternYAML  string `json:"pattern_yaml"`
	HaystackJSON string `json:"haystack_json"`
	Module       string `json:"module"`
	Superset     bool   `json:"superset"`
}

type matchEntry struct {
	CellMapping  map[string]string `json:"cell_mapping"`
	InputByName  map[string]string `json:"input_by_name"`
	OutputByName map[string]string `json:"output_by_name"`
}

type matchResponse struct {
	Matches []matchEntry `json:"matches"`
}

func handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request body: %v", err), http.StatusBadRequest)
		return
	}

	needle, err := buildNeedleFromYAML(req.PatternYAML)
	if err != nil {
		http.Error(w, fmt.Sprintf("building needle: %v", err), http.StatusBadRequest)
		return
	}

	haystack, err := buildHaystackFromJSON(req.HaystackJSON, req.Module)
	if err != nil {
		http.Error(w, fmt.Sprintf("building haystack: %v", err), http.StatusBadRequest)
		return
	}

	cfg := svql.NewConfigBuilder().MatchLength(!req.Superset).Build()
	matches := svql.FindSubgraphs(needle, haystack, cfg)

	resp := matchResponse{Matches: make([]matchEntry, 0, matches.Len())}
	for _, m := range matches.Matches {
		entry := matchEntry{
			CellMapping:  map[string]string{},
			InputByName:  map[string]string{},
			OutputByName: map[string]string{},
		}
		for pat, des := range m.CellMapping {
			entry.CellMapping[pat.Name()] = des.Name()
		}
		for name, ref := range m.InputByName {
			entry.InputByName[name] = ref.Name()
		}
		for name, ref := range m.OutputByName {
			entry.OutputByName[name] = ref.Name()
		}
		resp.Matches = append(resp.Matches, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("svqlserve: encoding response", "err", err)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func buildNeedleFromYAML(text string) (*netlist.Design, error) {
	tmp, err := os.CreateTemp("", "svqlserve-pattern-*.yaml")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := tmp.WriteString(text); err != nil {
		return nil, err
	}
	desc, err := pattern.LoadDescriptor(tmp.Name())
	if err != nil {
		return nil, err
	}
	return pattern.Build(desc)
}

func buildHaystackFromJSON(text, module string) (*netlist.Design, error) {
	doc, err := yosysjson.Decode(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return yosysjson.Convert(doc, module)
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	router := mux.NewRouter()
	router.HandleFunc("/match", handleMatch).Methods(http.MethodPost)
	router.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet)

	slog.Info("svqlserve: listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		slog.Error("svqlserve: server stopped", "err", err)
	}
	atexit.Exit(0)
}
