package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/explore"
	"github.com/seitarof/go-explorer/internal/gotypes"
	"github.com/seitarof/go-explorer/internal/logging"
	"github.com/seitarof/go-explorer/internal/provider"
	"github.com/seitarof/go-explorer/internal/store"
)

// ProviderFactory builds the reflection provider for a resolved config.
type ProviderFactory func(cfg *Config, logger *zap.Logger) provider.Provider

// GoProvider is the default factory, loading packages with go/packages.
func GoProvider(cfg *Config, logger *zap.Logger) provider.Provider {
	return gotypes.New(
		gotypes.WithDir(cfg.Dir),
		gotypes.WithBuildTags(cfg.Tags...),
		gotypes.WithTests(cfg.Tests),
		gotypes.WithLogger(logger),
	)
}

type app struct {
	version    string
	factory    ProviderFactory
	configDirs []string

	cfg    *Config
	logger *zap.Logger
	runner Runner
	format OutputFormat
}

// NewRootCommand builds the go-explorer command tree. configDirs are
// searched for .go-explorer.yaml.
func NewRootCommand(version string, factory ProviderFactory, configDirs ...string) *cobra.Command {
	if factory == nil {
		factory = GoProvider
	}
	a := &app{version: version, factory: factory, configDirs: configDirs}

	var output string
	root := &cobra.Command{
		Use:           "go-explorer",
		Short:         "Step through Go packages member by member",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			a.format = format
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	BindFlags(root.PersistentFlags())
	root.PersistentFlags().StringVarP(&output, "output", "o", string(FormatJSON), "output format (json or yaml)")

	root.AddCommand(
		a.openCommand(),
		a.inCommand(),
		a.outCommand(),
		a.membersCommand(),
		a.infoCommand("doc", "Show the documentation of a member or the current position", InfoDoc),
		a.infoCommand("sig", "Show the call signature of a member or the current position", InfoSignature),
		a.infoCommand("type", "Show the type of a member or the current position", InfoType),
		a.heritageCommand(),
		a.statusCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(cmd.Flags(), a.configDirs...)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.runner = NewRunner(a.factory(cfg, logger), store.NewFileStore(cfg.StatusPath), cfg.Query(), logger)
	return nil
}

func (a *app) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <import-path>",
		Short: "Start a new session rooted at a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printView(cmd, func() (View, error) { return a.runner.Open(args[0]) })
		},
	}
}

func (a *app) inCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "in <member|#index>",
		Short: "Step into a member of the current position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printView(cmd, func() (View, error) { return a.runner.In(args[0]) })
		},
	}
}

func (a *app) outCommand() *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "out [levels]",
		Short: "Step out towards the root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("to") {
				return a.printView(cmd, func() (View, error) { return a.runner.OutTo(to) })
			}
			levels := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid levels %q: %w", args[0], err)
				}
				levels = n
			}
			return a.printView(cmd, func() (View, error) { return a.runner.Out(levels) })
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "trace index to return to")
	return cmd
}

func (a *app) membersCommand() *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List members of the current position, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{Term: term, Mode: a.cfg.Mode, IncludePrivate: a.cfg.Private}
			return a.printView(cmd, func() (View, error) { return a.runner.Members(q) })
		},
	}
	cmd.Flags().StringVarP(&term, "filter", "f", "", "filter term")
	return cmd
}

func (a *app) infoCommand(use, short string, kind InfoKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [member]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member := ""
			if len(args) == 1 {
				member = args[0]
			}
			info, err := a.runner.Info(kind, member)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), info)
		},
	}
}

func (a *app) heritageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "heritage [class...]",
		Short: "Show the embedding graph of classes at the current position",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.runner.Heritage(args)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), g)
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printView(cmd, a.runner.Show)
		},
	}
}

func (a *app) printView(cmd *cobra.Command, run func() (View, error)) error {
	v, err := run()
	if err != nil {
		return err
	}
	return a.print(cmd.OutOrStdout(), v)
}

func (a *app) print(w io.Writer, v any) error {
	out, err := FormatResponse(v, a.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Execute runs the command tree and reports failures on stderr. It returns
// the process exit code.
func Execute(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorMessage(err))
		return 1
	}
	return 0
}

// ErrorMessage renders err for humans, headlined by its notification title
// when it is a session error.
func ErrorMessage(err error) string {
	var e *explore.Error
	if errors.As(err, &e) {
		return e.Title() + " " + e.Message
	}
	return "Error: " + err.Error()
}
