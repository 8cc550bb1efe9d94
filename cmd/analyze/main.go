// One-shot offline analysis: read a MarketDataState JSON file, run the
// forecast pipeline, print the result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/analyzer"
	"github.com/NinjaPuppetDev/trader-executor-sub000/internal/marketdata"
	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

func main() {
	var (
		input     = flag.String("input", "", "path to MarketDataState JSON file")
		overrides = flag.String("config", "", "JSON analyzer config overrides")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *input == "" {
		log.Fatal().Msg("Usage: analyze -input snapshot.json [-config '{...}']")
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input file")
	}

	var state models.MarketDataState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse input file")
	}
	marketdata.Normalize(&state)

	cfg, err := models.AnalyzerConfigFromJSON([]byte(*overrides))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid analyzer configuration")
	}

	result := analyzer.Analyze(&state, cfg)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal result")
	}
	fmt.Println(string(out))
}
