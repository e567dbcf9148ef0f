package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/goliatone/go-rentalcontract/internal/app"
	"github.com/goliatone/go-rentalcontract/internal/config"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/tui"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

func main() {
	format := flag.String("format", "text", "document format (pdf, html, text)")
	output := flag.String("output", "", "output file (stdout for text, generated name otherwise)")
	configPath := flag.String("config", "", "YAML configuration file for currency, agency and clauses")
	valuesPath := flag.String("values", "", "JSON file with initial answers")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	components, err := app.Build(cfg.Contract)
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}
	renderer, err := components.Documents.Resolve(*format)
	if err != nil {
		log.Fatalf("Unknown format %q (available: %v)", *format, components.Documents.List())
	}

	initial, err := readValues(*valuesPath)
	if err != nil {
		log.Fatalf("Failed to read initial values: %v", err)
	}

	session := tui.New(tui.WithForm(components.Form))
	record, err := session.Run(ctx, initial)
	if err != nil {
		var fieldErrs validation.FieldErrors
		switch {
		case errors.Is(err, tui.ErrAborted):
			fmt.Fprintln(os.Stderr, "Saisie annulée")
			os.Exit(130)
		case errors.As(err, &fieldErrs):
			for _, name := range fieldErrs.Fields() {
				fmt.Fprintf(os.Stderr, "%s: %s\n", name, fieldErrs[name].Message)
			}
			os.Exit(1)
		default:
			log.Fatalf("Data entry failed: %v", err)
		}
	}

	doc := render.NewDocument(record, time.Now())
	body, err := renderer.Render(ctx, doc, components.Print)
	if err != nil {
		log.Fatalf("Failed to render contract: %v", err)
	}

	target := *output
	if target == "" && renderer.Name() == "text" {
		fmt.Print(string(body))
		return
	}
	if target == "" {
		target = doc.FileNameFor(renderer)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Contract %s written to %s\n", doc.Reference, target)
}

func readValues(path string) (contract.Values, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values contract.Values
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}
