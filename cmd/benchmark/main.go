// ABOUTME: Command-line runner for the extraction benchmark
// ABOUTME: Plays labelled scenarios through the coach and writes JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harper/daily-coach/benchmarks/extraction"
	"github.com/harper/daily-coach/internal/config"
	"github.com/harper/daily-coach/internal/core"
	"github.com/harper/daily-coach/internal/llm"
	"github.com/joho/godotenv"
)

func main() {
	scenarioID := flag.String("scenario", "", "Run one scenario (wake, task, activity, mixed). If empty, runs all.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	withModel := flag.Bool("with-model", false, "Use the configured completion service for open-ended replies")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger := cfg.Logger(os.Stderr)

	var completer llm.Completer
	if *withModel {
		completer, err = llm.New(llm.OptionsFromConfig(cfg))
		if err != nil {
			logger.Fatal("failed to create completion client", "err", err)
		}
	}

	scenarios := extraction.AllScenarios()
	if *scenarioID != "" {
		scenario, ok := extraction.FindScenario(*scenarioID)
		if !ok {
			logger.Fatal("unknown scenario", "id", *scenarioID, "valid", "wake, task, activity, mixed")
		}
		scenarios = []extraction.Scenario{scenario}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("========================================")
	fmt.Println("Daily Coach Extraction Benchmark")
	fmt.Println("========================================")

	runner := extraction.NewBenchmarkRunner(completer, core.CoachOptions{
		LLMTimeout:         cfg.LLMTimeout,
		PromptContextChars: cfg.PromptContextChars,
	}, os.Stdout, *verbose, logger)
	results := runner.RunAll(ctx, scenarios)

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	failed := 0
	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.ScenarioID, result.ScenarioName)
		fmt.Printf("  Intent accuracy: %.2f\n", result.IntentAccuracy)
		fmt.Printf("  Extraction:      %.2f\n", result.ExtractionScore)
		fmt.Printf("  Faithfulness:    %.2f\n", result.FaithfulnessScore)
		fmt.Printf("  Context recall:  %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Overall:         %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)
		if result.Status != "PASS" {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total: %d  Passed: %d  Failed: %d\n", len(results), len(results)-failed, failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		logger.Fatal("failed to export results", "err", err)
	}

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
