// Command malietl dumps the text of Malie script containers into translation
// documents and writes edited documents back.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/arloliu/malie/config"
	"github.com/arloliu/malie/editor"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `name:"config" short:"c" help:"Path to a malietl.toml file." type:"path"`
	LogLevel string `name:"log-level" help:"Override log.level (debug, info, warn, error)."`
	NoColor  bool   `name:"no-color" help:"Disable colored output."`

	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
	colors *palette
}

// CLI defines the command-line interface for malietl.
type CLI struct {
	Globals

	Info    InfoCmd    `cmd:"" help:"Show container regions and counts."`
	Dump    DumpCmd    `cmd:"" help:"Write a translation document for a container."`
	Apply   ApplyCmd   `cmd:"" help:"Apply a translation document and write a new container."`
	Diff    DiffCmd    `cmd:"" help:"Show the edits a translation document makes."`
	Verify  VerifyCmd  `cmd:"" help:"Check that a container survives an unchanged round trip."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// setup loads the configuration and builds the logger and palette.
func (g *Globals) setup() error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	g.cfg = cfg
	g.logger = cfg.Logger(g.stderr)
	g.colors = newPalette(!g.NoColor && isTerminal(g.stdout))

	return nil
}

// editorOptions returns the configured editor options followed by extra.
func (g *Globals) editorOptions(extra ...editor.Option) ([]editor.Option, error) {
	opts, err := g.cfg.EditorOptions(g.logger)
	if err != nil {
		return nil, err
	}

	return append(opts, extra...), nil
}

func (g *Globals) printf(format string, args ...any) {
	fmt.Fprintf(g.stdout, format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	cli.stdout = stdout
	cli.stderr = stderr

	parser, err := kong.New(&cli,
		kong.Name("malietl"),
		kong.Description("Malie script container text tool"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.setup(); err != nil {
		return err
	}

	return ctx.Run(&cli.Globals)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "malietl: %v\n", err)
		os.Exit(1)
	}
}
