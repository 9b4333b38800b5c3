package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sanjaysah101/pi-loom/internal/config"
	"github.com/sanjaysah101/pi-loom/internal/pipeline"
	"github.com/sanjaysah101/pi-loom/internal/pitch"
	"github.com/sanjaysah101/pi-loom/internal/render"
	"github.com/sanjaysah101/pi-loom/internal/server"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pi-loom",
	Short: "Weave the digits of π into melodies",
	Long: `pi-loom maps the decimal digits of π onto musical scales, enhances
the resulting melody by detecting and mutating repeated patterns, and
derives parallel harmony voices.

Pipeline: π digits → scale mapping → pattern enhancement → output`,
	Version: version,
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a melody from the digits of π",
	Long: `Compose a melody from the first N digits of π.

Examples:
  pi-loom compose --digits 64
  pi-loom compose -n 128 --scale pentatonic --key D --harmony
  pi-loom compose -n 64 --complexity 0.8 --variation 0.5 --seed 7 --format strudel`,
	RunE: runCompose,
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List supported scales and keys",
	RunE:  runScales,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the composition API server",
	Long: `Start the HTTP API backing the browser toy.

Example:
  pi-loom serve --port 8080`,
	RunE: runServe,
}

var (
	// compose flags
	digitCount int
	scaleName  string
	keyName    string
	baseOctave int
	complexity float64
	variation  float64
	harmony    bool
	seed       int64
	tempo      float64
	format     string
	outputPath string
	noCache    bool
	verbose    bool

	// serve flags
	port int
)

func init() {
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(scalesCmd)
	rootCmd.AddCommand(serveCmd)

	// Compose command flags
	composeCmd.Flags().IntVarP(&digitCount, "digits", "n", 32, "Number of π digits to compose from")
	composeCmd.Flags().StringVarP(&scaleName, "scale", "s", "major", "Scale ("+strings.Join(pitch.ScaleNames(), ", ")+")")
	composeCmd.Flags().StringVarP(&keyName, "key", "k", "C", "Key root (C, C#, D, ...)")
	composeCmd.Flags().IntVar(&baseOctave, "octave", 4, "Base octave for the lowest scale degree")
	composeCmd.Flags().Float64VarP(&complexity, "complexity", "c", 0.5, "How many detected patterns drive enhancement (0-1)")
	composeCmd.Flags().Float64VarP(&variation, "variation", "r", 0.3, "Mutation probability and magnitude (0-1)")
	composeCmd.Flags().BoolVar(&harmony, "harmony", false, "Derive third and fifth harmony voices")
	composeCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible mutations (0 = random)")
	composeCmd.Flags().Float64Var(&tempo, "tempo", 120, "Tempo in BPM (strudel output)")
	composeCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, strudel)")
	composeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	composeCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the π digit cache")
	composeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Serve command flags
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: config or 8080)")
}

func runCompose(cmd *cobra.Command, args []string) error {
	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
		cancel()
	}()

	outputFormat, err := render.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg := pipeline.DefaultConfig()
	cfg.Digits = digitCount
	cfg.Scale = scaleName
	cfg.Key = keyName
	cfg.BaseOctave = baseOctave
	cfg.Complexity = complexity
	cfg.Variation = variation
	cfg.Harmony = harmony
	cfg.Seed = seed
	cfg.Tempo = tempo
	cfg.Format = outputFormat
	cfg.UseCache = !noCache

	// Progress goes to stderr so stdout stays clean for the composition.
	orch := pipeline.NewOrchestrator(os.Stderr, verbose)
	result, err := orch.Execute(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Output), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputPath)
	} else {
		fmt.Print(result.Output)
	}

	// Brief summary
	fmt.Fprintf(os.Stderr, "  %d notes, %d patterns, %s %s",
		len(result.Composition.Notes), len(result.Composition.Patterns), result.Key, result.Scale)
	if result.Composition.Harmonies != nil {
		fmt.Fprint(os.Stderr, ", 2 harmony voices")
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

func runScales(cmd *cobra.Command, args []string) error {
	fmt.Println("Scales:")
	for _, name := range pitch.ScaleNames() {
		intervals, _ := pitch.ScaleIntervals(name)
		fmt.Printf("  %-12s %v\n", name, intervals)
	}
	fmt.Println("\nKeys:")
	fmt.Printf("  %s\n", strings.Join(pitch.Names[:], " "))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != 0 {
		cfg.Port = port
	}

	return server.New(cfg).Run()
}
