// Rekakata is a CLI for generating UGC text-to-video prompts.
//
// Usage:
//
//	rekakata generate <idea> [--platform tiktok,instagram] [--format md|json] [--output file] [--html]
//	rekakata export [--platform NAME]
//	rekakata info [--platform NAME]
//	rekakata version
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"rekakata/internal/config"
	"rekakata/internal/engine"
	"rekakata/internal/export"
	"rekakata/internal/format"
	"rekakata/internal/groq"
	"rekakata/internal/httpclient"
	"rekakata/internal/platform"
	"rekakata/internal/trends"
	"rekakata/internal/validate"
)

const version = "1.0.0"

const cliSession = "cli"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point; stdio and argv are injected so tests can
// drive the full command surface.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "generate":
		return cmdGenerate(ctx, stdout, args[1:])
	case "export":
		return cmdExport(stdout, args[1:])
	case "info":
		return cmdInfo(stdout, args[1:])
	case "version":
		return cmdVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "RekaKata - AI-powered UGC Prompt Generator")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate <idea>   Generate a text-to-video prompt")
	fmt.Fprintln(w, "  export            Export the last generated prompt")
	fmt.Fprintln(w, "  info              Show supported platform details")
	fmt.Fprintln(w, "  version           Print version information")
}

func cmdGenerate(ctx context.Context, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	platformsFlag := fs.String("platform", platform.Default, "target platforms, comma-separated")
	formatFlag := fs.String("format", "md", "output format: md or json")
	outputFlag := fs.String("output", "", "write output to file instead of the export dir")
	htmlFlag := fs.Bool("html", false, "also write an HTML preview of the export")
	if err := fs.Parse(args); err != nil {
		return err
	}

	idea := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if idea == "" {
		return fmt.Errorf("generate: an idea is required")
	}
	if *formatFlag != "md" && *formatFlag != "json" {
		return fmt.Errorf("generate: unsupported format %q", *formatFlag)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	catalog, err := trends.Load(cfg.TrendDataPath)
	if err != nil {
		return err
	}

	httpClient := httpclient.New(httpclient.Options{Timeout: cfg.HTTPTimeout})
	eng := engine.New(engine.Options{
		Validator: validate.New(cfg.MaxInputLength),
		Injector:  trends.NewInjector(catalog, trends.InjectorOptions{}),
		Completer: groq.New(groq.Options{
			APIKey:      cfg.GroqAPIKey,
			BaseURL:     cfg.GroqBaseURL,
			Model:       cfg.GroqModel,
			Temperature: cfg.GroqTemperature,
			MaxTokens:   cfg.GroqMaxTokens,
			MaxRetries:  cfg.GroqMaxRetries,
			HTTPClient:  httpClient,
			Logger:      logger,
		}),
		Logger: logger,
	})

	platforms := splitPlatforms(*platformsFlag)

	// Validate every requested platform before spending any API calls.
	for _, p := range platforms {
		if _, err := platform.Resolve(p); err != nil {
			return err
		}
	}

	// One pipeline run per platform, fanned out concurrently.
	outputs := make([]engine.Output, len(platforms))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range platforms {
		i, p := i, p
		eg.Go(func() error {
			reqCtx, cancel := context.WithTimeout(egCtx, cfg.RequestTimeout)
			defer cancel()

			out, err := eng.Generate(reqCtx, idea, p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	exports := export.NewStore(export.Options{
		Dir:         cfg.OutputDir,
		HTMLPreview: *htmlFlag,
		Logger:      logger,
	})

	for _, out := range outputs {
		fmt.Fprintf(stdout, "Platform: %s\n", out.Platform.ID)
		fmt.Fprintf(stdout, "Language: %s\n", strings.ToUpper(out.Language))
		fmt.Fprintln(stdout, "")

		rendered := format.Markdown(out)
		if *formatFlag == "json" {
			rendered, err = format.JSON(out)
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, rendered)

		if *outputFlag != "" {
			if err := os.WriteFile(*outputFlag, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(stdout, "Saved to: %s\n", *outputFlag)
			continue
		}

		art, err := exports.Put(cliSessionFor(out.Platform.ID, len(platforms) > 1), format.Markdown(out))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved to: %s\n", art.Path)
	}

	return nil
}

func cmdExport(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	platformFlag := fs.String("platform", "", "platform-specific session to export")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	session := cliSession
	if *platformFlag != "" {
		profile, err := platform.Resolve(*platformFlag)
		if err != nil {
			return err
		}
		session = cliSession + "-" + profile.ID
	}

	exports := export.NewStore(export.Options{Dir: cfg.OutputDir})
	_, path, err := exports.ReadLatest(session)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no previously generated prompt to export; run generate first")
		}
		return err
	}

	fmt.Fprintf(stdout, "Exported: %s\n", path)
	return nil
}

func cmdInfo(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	platformFlag := fs.String("platform", "", "show a single platform")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids := platform.Supported()
	if *platformFlag != "" {
		profile, err := platform.Resolve(*platformFlag)
		if err != nil {
			return err
		}
		ids = []string{profile.ID}
	}

	for _, id := range ids {
		profile, _ := platform.Resolve(id)
		fmt.Fprintf(stdout, "Platform: %s\n", profile.ID)
		fmt.Fprintf(stdout, "  Aspect Ratio:    %s\n", profile.AspectRatio)
		fmt.Fprintf(stdout, "  Max Duration:    %s\n", profile.MaxDuration)
		fmt.Fprintf(stdout, "  Resolution:      %s\n", profile.Resolution)
		fmt.Fprintf(stdout, "  Optimal Length:  %s\n", profile.OptimalLength)
		fmt.Fprintf(stdout, "  Characteristics: %s\n", profile.Characteristics)
		fmt.Fprintf(stdout, "  Posting Times:   %s\n", strings.Join(profile.PostingTimes, ", "))
		fmt.Fprintln(stdout, "")
	}
	return nil
}

func cmdVersion(stdout io.Writer) error {
	fmt.Fprintf(stdout, "RekaKata v%s\n", version)
	fmt.Fprintln(stdout, "AI-powered UGC Prompt Generator")
	fmt.Fprintln(stdout, "Generates optimized prompts for RunwayML, Pika Labs, and Kling")
	fmt.Fprintln(stdout, "Supports TikTok, Instagram Reels, and YouTube Shorts")
	return nil
}

func splitPlatforms(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{platform.Default}
	}
	return out
}

func cliSessionFor(platformID string, multi bool) string {
	if multi {
		return cliSession + "-" + platformID
	}
	return cliSession
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
