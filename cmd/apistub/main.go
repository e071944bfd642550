package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/apistub/apistub"
	"github.com/apistub/apistub/internal/config"
	"github.com/apistub/apistub/provider"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate Python stub files from API descriptors."`
	Check   CheckCmd   `cmd:"" help:"Validate API descriptors without generating files."`

	Verbose bool `help:"Enable debug logging." short:"v"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Out        string `arg:"" optional:"" help:"Output directory for generated stub files."`
	SpecDir    string `help:"Directory containing API descriptor files." short:"s" name:"spec-dir"`
	Flavor     string `help:"Stub flavor (sync or async)." short:"f"`
	SingleFile bool   `help:"Emit all services into a single __init__.pyi."`
	Config     string `help:"Config file path." short:"c" default:""`
}

func (c *GenCmd) Run(logger *slog.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	// Flags override config file values.
	if c.Out != "" {
		cfg.Output.Dir = c.Out
	}
	if c.SpecDir != "" {
		cfg.Spec.Dir = c.SpecDir
	}
	if c.Flavor != "" {
		cfg.Stubs.Flavor = c.Flavor
	}
	if c.SingleFile {
		cfg.Output.SingleFile = true
	}

	logger.Debug("generating stubs",
		slog.String("spec_dir", cfg.Spec.Dir),
		slog.String("out_dir", cfg.Output.Dir),
		slog.String("flavor", cfg.Stubs.Flavor))

	err = apistub.Generate(&apistub.Config{
		OutDir:       cfg.Output.Dir,
		SpecDir:      cfg.Spec.Dir,
		SpecFiles:    cfg.Spec.Files,
		Flavor:       cfg.Stubs.Flavor,
		SingleFile:   cfg.Output.SingleFile,
		GlobalParams: cfg.GlobalParams(),
		ReturnType:   cfg.Stubs.ReturnType,
		ClientClass:  cfg.Stubs.ClientClass,
		BaseClass:    cfg.Stubs.BaseClass,
		EmitComments: cfg.Stubs.Comments,
		Frontmatter:  cfg.Stubs.Frontmatter,
		LineEnding:   cfg.Output.LineEnding,
	})
	if err != nil {
		return apistub.TransformError(err)
	}

	logger.Info("stubs generated", slog.String("out_dir", cfg.Output.Dir))
	return nil
}

type CheckCmd struct {
	SpecDir string `arg:"" optional:"" help:"Directory containing API descriptor files."`
	Config  string `help:"Config file path." short:"c" default:""`
}

func (c *CheckCmd) Run(logger *slog.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	specDir := cfg.Spec.Dir
	if c.SpecDir != "" {
		specDir = c.SpecDir
	}

	p := &provider.SpecProvider{}
	schema, err := p.BuildSchema(context.Background(), provider.SpecInputOptions{
		Dir:   specDir,
		Files: cfg.Spec.Files,
	})
	if err != nil {
		return apistub.TransformError(err)
	}

	errs := schema.Validate()
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "Error: %v\n", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	logger.Info("descriptors valid",
		slog.Int("operations", len(schema.Endpoints)),
		slog.Int("global_params", len(schema.GlobalParams)))
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("apistub"),
		kong.Description("Generate Python type-stub files for REST API clients."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
