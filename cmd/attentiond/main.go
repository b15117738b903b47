// Attentiond is an MCP server exposing a single inert "attend" tool.
//
// The tool's parameters and description are shaped by command-line
// directives, applied left to right over a built-in default set. Calls to
// the tool have no side effects and always return an empty text result.
//
// Usage:
//
//	# Serve the default tool on stdio
//	attentiond
//
//	# Require everything except the prompt, add a parameter
//	attentiond --all-required --optional prompt \
//	    --add-param "url:string:Base URL: https://example.com:required"
//
//	# Serve streamable HTTP instead of stdio
//	ATTENTIOND_SERVER_TRANSPORT=http attentiond --config ./attentiond.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/attentiond/internal/config"
	"github.com/fyrsmithlabs/attentiond/internal/toolconfig"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

const usageHint = "Run 'attentiond --help' for usage."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, serve)
	stop()
	os.Exit(code)
}

// serveFunc runs the server until ctx is done.
type serveFunc func(ctx context.Context, cfg *config.Config, tool *toolconfig.Tool, stderr io.Writer) error

// flagError marks command-line mistakes, which get a usage hint.
type flagError struct{ err error }

func (e *flagError) Error() string { return e.err.Error() }

func (e *flagError) Unwrap() error { return e.err }

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, run serveFunc) int {
	cmd := newRootCmd(run)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ferr *flagError
	if errors.As(err, &ferr) {
		fmt.Fprintln(stderr, usageHint)
	}
	return 1
}

func newRootCmd(run serveFunc) *cobra.Command {
	opts := toolconfig.NewOptions()
	var configPath string

	cmd := &cobra.Command{
		Use:   "attentiond [directives]",
		Short: "MCP server exposing a configurable, inert attend tool",
		Long: `attentiond serves one MCP tool, "attend", whose input schema is shaped by
the directives below. Directives apply left to right, so later ones refine
earlier ones. Calls to the tool always return an empty text result.

Parameter spec for --add-param:
  name:kind:description[:required|optional]
  kind is one of string, number, array, any. Colons inside the description
  are kept; a trailing :required or :optional sets requiredness.

Runtime settings (transport, logging, telemetry) come from --config and
ATTENTIOND_* environment variables.`,
		Example: `  attentiond --all-required --optional prompt
  attentiond --add-param "url:string:Base URL: https://example.com:required"
  attentiond --tool-description-file ./attend.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &flagError{toolconfig.UnexpectedArgs(args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Err(); err != nil {
				return &flagError{err}
			}
			tool := opts.Tool()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), cfg, tool, cmd.ErrOrStderr())
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().SortFlags = false
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "runtime config file (default ~/.config/attentiond/config.yaml)")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &flagError{opts.Resolve(err)}
	})

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "attentiond by Fyrsmith Labs")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", gitCommit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	}
}
