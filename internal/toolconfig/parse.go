package toolconfig

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by Parse when help was requested.
var ErrHelp = pflag.ErrHelp

// ErrUsage wraps command-line errors that are not directive failures:
// unknown flags, missing flag values and stray positional arguments.
var ErrUsage = errors.New("invalid usage")

// Parse applies the directives in args, left to right, to the default tool.
func Parse(args []string) (*Tool, error) {
	opts := NewOptions()

	fs := pflag.NewFlagSet(DefaultToolName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	opts.AddFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, opts.Resolve(err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, UnexpectedArgs(rest)
	}
	return opts.Tool(), nil
}

// Resolve maps a flag parsing error to the error callers should see: the
// structured directive error when a directive failed, ErrHelp for help, and
// an ErrUsage error otherwise.
func (o *Options) Resolve(parseErr error) error {
	if o.err != nil {
		return o.err
	}
	if errors.Is(parseErr, pflag.ErrHelp) {
		return ErrHelp
	}
	return fmt.Errorf("%w: %v", ErrUsage, parseErr)
}

// UnexpectedArgs reports positional arguments, which no directive accepts.
func UnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[0])
}
