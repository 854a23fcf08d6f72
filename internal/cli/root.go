package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blagoySimandov/cvtex/internal/config"
	"github.com/blagoySimandov/cvtex/internal/logger"
)

// app carries what every command needs once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	log, err := logger.New(cfg.Log, a.errOut, a.verbose)
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	a.cfg = cfg
	a.log = log
	log.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("engine", cfg.PDF.Engine),
		zap.Bool("skills_section", cfg.Render.SkillsSection))
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	render := newRenderCmd(a)

	root := &cobra.Command{
		Use:   "cvtex [input]",
		Short: "Generate a moderncv LaTeX curriculum from YAML or JSON",
		Long: `cvtex turns a structured curriculum (personal data, education, experiences,
languages) into moderncv LaTeX source, and optionally compiles it to PDF.

Running cvtex with an input file is the same as "cvtex render".`,
		Args:              render.Args,
		RunE:              render.RunE,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(ExitUsageError, err)
	})

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().AddFlagSet(render.Flags())

	root.AddCommand(render)
	root.AddCommand(newSkillsCmd(a))
	root.AddCommand(newDumpCmd(a))
	return root
}

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	return newRootCmd(&app{out: out, errOut: errOut, now: time.Now})
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(os.Stdout, os.Stderr)
	root.Version = version
	root.AddCommand(&cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "cvtex", version)
		},
	})

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return ExitCode(err)
}

func exactlyOneInput(cmd *cobra.Command, args []string) error {
	return withCode(ExitUsageError, cobra.ExactArgs(1)(cmd, args))
}
