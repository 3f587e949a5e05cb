// ABOUTME: CLI entry point for automate: loads .env and settings, then dispatches kong commands
// ABOUTME: The app value carries settings and injectable collaborators into each command

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/automate-go/internal/termfix"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mauromedda/automate-go/internal/config"
	"github.com/mauromedda/automate-go/internal/desktop"
	pilog "github.com/mauromedda/automate-go/internal/log"
	"github.com/mauromedda/automate-go/pkg/ai"
	"github.com/mauromedda/automate-go/pkg/ai/provider/openai"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app holds what every command needs. Tests replace the constructors.
type app struct {
	ctx        context.Context
	settings   *config.Settings
	configPath string
	stdout     io.Writer
	stdin      io.Reader

	newProvider func(*config.Settings) ai.Provider
	newDesktop  func(*config.Settings) desktop.Desktop
}

func newApp(ctx context.Context) *app {
	return &app{
		ctx:    ctx,
		stdout: os.Stdout,
		stdin:  os.Stdin,
		newProvider: func(s *config.Settings) ai.Provider {
			return openaiProvider(s)
		},
		newDesktop: func(s *config.Settings) desktop.Desktop {
			return desktop.New(s.CaptureCommand, s.MaxImageDim)
		},
	}
}

func openaiProvider(s *config.Settings) *openai.Provider {
	return openai.New(openai.Options{
		Endpoint: s.Endpoint,
		APIKey:   s.APIKey,
		Timeout:  s.RequestTimeout,
	})
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(newApp(ctx), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// execute parses args, loads settings, and runs the selected command.
func execute(a *app, args []string) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("automate"),
		kong.Description("Desktop automation agent driven by an OpenAI-compatible model."),
		kong.UsageOnError(),
		kong.Writers(a.stdout, os.Stderr),
		kongVars(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	settings, err := config.Load(cli.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	pilog.SetLevel(pilog.ParseLevel(settings.LogLevel))
	if cli.Verbose {
		pilog.SetLevel(pilog.LevelDebug)
	}

	a.settings = settings
	a.configPath = cli.ConfigFile
	if a.configPath == "" {
		a.configPath = config.GlobalConfigFile()
	}
	return kctx.Run(a)
}

// Run prints version information.
func (VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.stdout, "automate %s (%s) built %s\n", version, commit, date)
	return nil
}
