package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"resumeats/ats-analyzer/internal/app"
	"resumeats/ats-analyzer/internal/config"
	"resumeats/ats-analyzer/internal/services"
)

func main() {
	cvPath := flag.String("cv", "", "path to the resume to analyze")
	jdPath := flag.String("jd", "", "path to a job description document")
	jdText := flag.String("jd-text", "", "job description as plain text (overrides -jd)")
	validate := flag.Bool("validate", false, "only run the heuristic resume check")
	strict := flag.Bool("strict", false, "extract a strictly typed CV profile instead of running the pipeline")
	flag.Parse()

	if *cvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("🚀 Starting document analysis...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	components, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("❌ Failed to initialize services: %v", err)
	}

	switch {
	case *validate:
		text, ok := components.Documents.ExtractText(ctx, *cvPath)
		if !ok {
			log.Fatalf("❌ No text extracted from %s", *cvPath)
		}
		printJSON(components.Validator.Validate(text))

	case *strict:
		text, ok := components.Documents.ExtractText(ctx, *cvPath)
		if !ok {
			log.Fatalf("❌ No text extracted from %s", *cvPath)
		}
		profile, err := components.ATS.ExtractCVProfile(ctx, text)
		if err != nil {
			log.Fatalf("❌ Failed to extract CV profile: %v", err)
		}
		printJSON(profile)

	default:
		outcome := components.Pipeline.ProcessResume(ctx, *cvPath, services.JobDescription{
			Path: *jdPath,
			Text: *jdText,
		})
		if !outcome.OK() {
			log.Printf("⚠️ Run %s stopped at %s", outcome.RunID, outcome.Stage)
			printJSON(map[string]string{"error": outcome.Message})
			os.Exit(1)
		}
		printJSON(map[string]any{"subheadings": outcome.Result})
	}

	log.Println("✅ Analysis completed")
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
