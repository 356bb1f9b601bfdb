// Package cmd implements the ydiff command line interface.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sst/ydiff/internal/config"
	"github.com/sst/ydiff/internal/render"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// NewRootCmd builds the ydiff root command.
func NewRootCmd() *cobra.Command {
	def := config.Default()

	cmd := &cobra.Command{
		Use:           "ydiff [<options>] [--] <old-file> <new-file>",
		Short:         "Pretty side-by-side diff",
		Long:          "ydiff renders a side-by-side, color-highlighted diff of two text files,\nwith intraline change highlighting and context-limited hunks.",
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	flags.IntP("unified", "U", def.Context, "show <n> lines of context")
	flags.IntP("width", "w", 0, "fit output to <n> columns (0: autodetect)")
	flags.IntP("expand-tabs", "t", def.TabSize, "expand tabs to <n> spaces")
	flags.BoolP("signs", "s", def.Signs, "show sign columns")
	flags.BoolP("background", "b", def.Background, "highlight whitespace-only changes with background color")
	flags.BoolP("line-numbers", "l", def.LineNumbers, "show line number columns")
	flags.String("color", def.Color, "colorize output: always, never, or auto")
	flags.Bool("debug", def.Debug, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if opts.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	oldPath, newPath := args[0], args[1]
	for _, p := range []string{oldPath, newPath} {
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", p)
		}
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory: %s", p)
		}
	}

	if opts.Width == 0 {
		opts.Width = detectWidth()
	}

	oldSrc, err := os.ReadFile(oldPath)
	if err != nil {
		return err
	}
	newSrc, err := os.ReadFile(newPath)
	if err != nil {
		return err
	}

	r, err := render.New(render.Config{
		Context:     opts.Context,
		Width:       opts.Width,
		TabSize:     opts.TabSize,
		Signs:       opts.Signs,
		Background:  opts.Background,
		LineNumbers: opts.LineNumbers,
		Palette:     palette(opts.Color, cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := r.Render(out, oldPath, newPath, string(oldSrc), string(newSrc)); err != nil {
		return err
	}
	return out.Flush()
}

// detectWidth returns the terminal width, falling back to a fixed default
// when stdout is not a terminal.
func detectWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return config.FallbackWidth
}

// palette resolves the color mode to a concrete escape-code table. In auto
// mode the stream the diff is written to decides: anything that is not a
// terminal gets monochrome output.
func palette(mode string, out io.Writer) render.Palette {
	switch mode {
	case "always":
		return render.DefaultPalette()
	case "never":
		return render.MonochromePalette()
	}
	f, ok := out.(*os.File)
	if !ok || termenv.EnvNoColor() || !term.IsTerminal(int(f.Fd())) {
		return render.MonochromePalette()
	}
	return render.DefaultPalette()
}

// Execute runs the root command, reporting failures to stderr with a
// nonzero exit status.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
