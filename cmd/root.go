// Package cmd builds the hooklint command tree.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/hooklint/cli"
	"github.com/grovetools/hooklint/command"
	"github.com/grovetools/hooklint/config"
	"github.com/grovetools/hooklint/hook"
	"github.com/grovetools/hooklint/lint"
	"github.com/grovetools/hooklint/logging"
	"github.com/grovetools/hooklint/project"
	"github.com/grovetools/hooklint/response"
	"github.com/grovetools/hooklint/session"
	"github.com/grovetools/hooklint/version"
)

type hookFlags struct {
	collect       bool
	lintCollected bool
	lenient       bool
	debug         bool
}

// NewRootCmd creates the hooklint command. Run without a subcommand it reads
// one event from stdin and writes one decision line to stdout.
func NewRootCmd() *cobra.Command {
	var flags hookFlags

	root := cli.NewStandardCommand("hooklint", "Lint files edited by an AI coding agent")
	root.Long = `Lint files edited by an AI coding agent.

Reads one tool event as JSON on stdin, runs the project's linter on the
edited file, and prints one decision line on stdout. The process always
exits 0.

With --collect the file is recorded for the session instead. With
--lint-collected every recorded file is linted once per project.

Examples:
  # lint the edited file now
  hooklint < event.json

  # defer linting to the end of the turn
  hooklint --collect < event.json
  hooklint --lint-collected < stop-event.json`
	root.Version = version.Version
	root.Args = cobra.ArbitraryArgs
	root.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.Flags().BoolVar(&flags.collect, "collect", false, "Record the edited file for the session instead of linting it")
	root.Flags().BoolVar(&flags.lintCollected, "lint-collected", false, "Lint every file recorded for the session")
	root.Flags().BoolVar(&flags.lenient, "lenient", false, "Relax unused-variable and undefined-name rules")
	root.Flags().BoolVar(&flags.debug, "debug", false, "Alias for --verbose")
	root.Flags().BoolP("version", "V", false, "Print the version and exit")
	_ = root.Flags().MarkHidden("debug")
	cli.SetVersionTemplate(root)

	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, flags)
	}

	root.AddCommand(cli.NewVersionCommand("hooklint"))
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewPathsCmd())
	root.AddCommand(NewSchemaCmd())
	cli.ApplyStyledHelpRecursive(root)

	return root
}

// Execute runs the command tree and returns the process exit code. Failures
// of the hook itself still produce a decision and exit 0.
func Execute() int {
	return execute(NewRootCmd())
}

func execute(root *cobra.Command) int {
	c, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if c == root {
		d := cli.NewErrorHandler(false).Handle(err)
		fmt.Fprintln(root.OutOrStdout(), d.Render(false))
		return 0
	}
	cli.PrintError(c, err)
	return 1
}

func runHook(cmd *cobra.Command, flags hookFlags) error {
	verbose := cli.GetOptions(cmd).Verbose || flags.debug
	handler := cli.NewErrorHandler(verbose)
	handler.Out = cmd.ErrOrStderr()

	var decision response.Decision
	func() {
		defer handler.Recover(&decision)
		decision = handle(cmd.Context(), cmd, flags, &verbose, handler)
	}()

	_, err := fmt.Fprintln(cmd.OutOrStdout(), decision.Render(verbose))
	return err
}

func handle(ctx context.Context, cmd *cobra.Command, flags hookFlags, verbose *bool, handler *cli.ErrorHandler) response.Decision {
	payload, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return handler.Handle(err)
	}

	cfg, cfgErr := cli.LoadConfig(cmd)
	if cfgErr != nil {
		cfg = &config.Config{}
		cfg.SetDefaults()
	}
	if cfg.Verbose {
		*verbose = true
		handler.Verbose = true
	}

	if logCfg, err := logging.ConfigFrom(cfg); err == nil {
		logging.SetConfig(logCfg)
	}
	logger := logging.NewLogger("cmd")
	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("Ignoring configuration")
	}

	skipper, err := hook.NewFilter(cfg)
	if err != nil {
		logger.WithError(err).Warn("Ignoring ignore and disabled settings")
		skipper = nil
	}

	runner := command.NewRunner().WithTimeout(cfg.Timeout())
	hr := newHookRunner(runner, session.NewStore(cfg.Session.Dir, cfg.Session.Prefix), skipper)

	opts := hook.Options{
		Mode:    hook.ModeLint,
		Lenient: flags.lenient || cfg.Lenient,
	}
	switch {
	case flags.collect:
		opts.Mode = hook.ModeCollect
	case flags.lintCollected:
		opts.Mode = hook.ModeDrain
	}

	logger.WithFields(logrus.Fields{
		"mode":    opts.Mode,
		"lenient": opts.Lenient,
		"timeout": runner.Timeout(),
	}).Debug("Starting hook")

	decision, err := hr.Run(ctx, string(payload), opts)
	if err != nil {
		return handler.Handle(err)
	}
	if cfgErr != nil && !decision.Block {
		decision.Message += fmt.Sprintf(" (configuration ignored: %v)", cfgErr)
	}
	return decision
}

func newHookRunner(runner *command.Runner, store *session.Store, filter *hook.Filter) *hook.Runner {
	var skipper hook.Skipper
	if filter != nil {
		skipper = filter
	}
	return hook.NewRunner(project.NewResolver(runner), lint.NewDispatcher(runner), store, skipper)
}
