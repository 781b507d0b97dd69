// Package main provides the CLI entry point for reportsnap.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/reportsnap/pkg/adapters/chromeshot"
	"github.com/user/reportsnap/pkg/adapters/clibrowser"
	"github.com/user/reportsnap/pkg/adapters/filesink"
	"github.com/user/reportsnap/pkg/adapters/logger"
	"github.com/user/reportsnap/pkg/adapters/manualopen"
	"github.com/user/reportsnap/pkg/adapters/nullsink"
	"github.com/user/reportsnap/pkg/adapters/openaichat"
	"github.com/user/reportsnap/pkg/adapters/osfilesystem"
	"github.com/user/reportsnap/pkg/adapters/playwrightshot"
	"github.com/user/reportsnap/pkg/adapters/templatestore"
	"github.com/user/reportsnap/pkg/adapters/wkhtmltoimage"
	"github.com/user/reportsnap/pkg/config"
	"github.com/user/reportsnap/pkg/convert"
	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
	"github.com/user/reportsnap/pkg/report"
	"github.com/user/reportsnap/pkg/web"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "reportsnap",
		Usage:   l10n.T("Generate daily chat report images from transcripts"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Path to YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Commands: []*cli.Command{
			reportCommand(),
			convertCommand(),
			serveCommand(),
			templatesCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     l10n.T("Generate a daily report image from a chat transcript file"),
		ArgsUsage: "TRANSCRIPT_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: l10n.T("Prompt template name")},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: l10n.T("Model name override")},
			&cli.BoolFlag{Name: "stream", Aliases: []string{"s"}, Usage: l10n.T("Print model output as it streams")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output")},
		},
		Action: runReport,
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     l10n.T("Convert an HTML file to a PNG image"),
		ArgsUsage: "HTML_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output PNG file path")},
			&cli.IntFlag{Name: "width", Usage: l10n.T("Viewport width in pixels")},
			&cli.IntFlag{Name: "height", Usage: l10n.T("Viewport height in pixels")},
			&cli.Float64Flag{Name: "scale", Usage: l10n.T("Device scale factor")},
			&cli.IntFlag{Name: "timeout", Usage: l10n.T("Render timeout in milliseconds")},
			&cli.IntFlag{Name: "wait", Usage: l10n.T("Extra wait after load in milliseconds")},
		},
		Action: runConvert,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: l10n.T("Run the HTTP report and conversion service"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: l10n.T("Listen address (host:port)")},
		},
		Action: runServe,
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: l10n.T("List available prompt templates"),
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			store, err := templatestore.NewDiskStore(cfg.TemplatesDir, osfilesystem.New(), log)
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("reportsnap version %s", version))
			return nil
		},
	}
}

// setup loads the configuration and builds the logger shared by all
// subcommands.
func setup(c *cli.Context) (config.Config, ports.Logger, error) {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.FromEnv()
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}
	return cfg, log, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()
	return ctx, cancel
}

// buildSelector assembles the rendering backend chain in priority
// order. A configured remote conversion service replaces the local
// chain entirely.
func buildSelector(cfg config.Config, fs ports.FileSystem, log ports.Logger) *render.Selector {
	if cfg.ConversionServiceURL != "" {
		log.Info(l10n.F("Delegating rendering to %s", cfg.ConversionServiceURL))
		return render.NewSelector([]ports.Renderer{web.NewClient(cfg.ConversionServiceURL, log)}, fs, log)
	}

	backends := []ports.Renderer{
		playwrightshot.New(fs, log),
		chromeshot.New(cfg.ChromePath, fs, log),
		wkhtmltoimage.New(cfg.WkhtmltoPath, log),
		clibrowser.NewInstalledRenderer(fs, log),
		clibrowser.NewPathRenderer(fs, log),
		manualopen.NewRenderer(log),
	}
	return render.NewSelector(backends, fs, log)
}

func buildConverter(cfg config.Config, fs ports.FileSystem, log ports.Logger) (*convert.Converter, error) {
	selector := buildSelector(cfg, fs, log)
	return convert.New(cfg.OutputDir, cfg.ImageDir, cfg.HTMLDir, selector, fs, log)
}

func buildPipeline(c *cli.Context, cfg config.Config, fs ports.FileSystem, log ports.Logger) (*report.Pipeline, error) {
	converter, err := buildConverter(cfg, fs, log)
	if err != nil {
		return nil, err
	}
	store, err := templatestore.NewDiskStore(cfg.TemplatesDir, fs, log)
	if err != nil {
		return nil, err
	}
	chat := openaichat.NewClient(cfg.APIKey, log,
		openaichat.WithBaseURL(cfg.BaseURL),
		openaichat.WithModel(cfg.Model),
	)

	var sink ports.DebugSink = nullsink.New()
	if c.Bool("debug") || cfg.Debug {
		dir := c.String("debug-dir")
		if dir == "" {
			dir = cfg.DebugDir
		}
		sink = filesink.New(dir, fs)
	}

	return report.NewPipeline(store, chat, converter, fs, sink, log, cfg.OutputDir), nil
}

func runReport(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("transcript file argument is required"))
	}
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	pipeline, err := buildPipeline(c, cfg, fs, log)
	if err != nil {
		return err
	}

	transcriptPath := c.Args().First()
	data, err := fs.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	log.Info(l10n.F("Read transcript %s (%d bytes)", transcriptPath, len(data)))

	opts := report.Options{
		TemplateName: c.String("template"),
		Model:        c.String("model"),
	}
	if c.Bool("stream") {
		opts.OnDelta = func(delta string) {
			fmt.Print(delta)
		}
	}

	outcome, err := pipeline.Generate(ctx, string(data), opts)
	if c.Bool("stream") {
		fmt.Println()
	}
	if err != nil {
		return err
	}
	if !outcome.Success {
		if outcome.HTMLPath != "" {
			log.Info(l10n.F("Report HTML saved to %s", outcome.HTMLPath))
		}
		return fmt.Errorf("%s", outcome.Message)
	}

	log.Info(l10n.F("Report HTML saved to %s", outcome.HTMLPath))
	log.Info(l10n.F("Report image saved to %s", outcome.PNGPath))
	return nil
}

func runConvert(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("HTML file argument is required"))
	}
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	converter, err := buildConverter(cfg, fs, log)
	if err != nil {
		return err
	}

	opts := cfg.RenderOptions()
	if v := c.Int("width"); v > 0 {
		opts.ViewportWidth = v
	}
	if v := c.Int("height"); v > 0 {
		opts.ViewportHeight = v
	}
	if v := c.Float64("scale"); v > 0 {
		opts.ScaleFactor = v
	}
	if v := c.Int("timeout"); v > 0 {
		opts.TimeoutMs = v
	}
	if v := c.Int("wait"); v > 0 {
		opts.WaitTimeMs = v
	}

	result := converter.Convert(ctx, convert.Request{
		HTMLPath: c.Args().First(),
		PNGPath:  c.String("output"),
		Options:  opts,
	})
	for _, attempt := range result.Attempts {
		if attempt.Error != "" {
			log.Debug("%s: %s", attempt.Backend, attempt.Error)
		}
	}
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	log.Info(l10n.F("Image saved to %s", result.OutputPath))
	return nil
}

func runServe(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.ListenAddr = addr
	}

	fs := osfilesystem.New()
	converter, err := buildConverter(cfg, fs, log)
	if err != nil {
		return err
	}
	store, err := templatestore.NewDiskStore(cfg.TemplatesDir, fs, log)
	if err != nil {
		return err
	}

	// Report generation needs model credentials; without them the
	// server still offers conversion.
	var pipeline *report.Pipeline
	if cfg.APIKey != "" {
		chat := openaichat.NewClient(cfg.APIKey, log,
			openaichat.WithBaseURL(cfg.BaseURL),
			openaichat.WithModel(cfg.Model),
		)
		var sink ports.DebugSink = nullsink.New()
		if cfg.Debug {
			sink = filesink.New(cfg.DebugDir, fs)
		}
		pipeline = report.NewPipeline(store, chat, converter, fs, sink, log, cfg.OutputDir)
	} else {
		log.Warn(l10n.T("No API key configured, /api/report is disabled"))
	}

	server := web.NewServer(pipeline, converter, store, log, version)
	return server.Run(cfg.ListenAddr)
}
