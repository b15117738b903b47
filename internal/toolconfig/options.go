package toolconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/fyrsmithlabs/attentiond/internal/params"
)

// Directive flag names.
const (
	FlagAllRequired         = "all-required"
	FlagAllOptional         = "all-optional"
	FlagRequired            = "required"
	FlagOptional            = "optional"
	FlagAddParam            = "add-param"
	FlagToolDescription     = "tool-description"
	FlagToolDescriptionFile = "tool-description-file"
)

// Directive errors.
var (
	ErrNoNames               = errors.New("no parameter names given")
	ErrEmptyNameEntry        = errors.New("empty entry in parameter name list")
	ErrEmptyToolDescription  = errors.New("tool description is empty")
	ErrDescriptionAlreadySet = errors.New("tool description already set")
	ErrDescriptionConflict   = errors.New("tool description flags are mutually exclusive")
)

// DirectiveError reports a directive that could not be applied.
type DirectiveError struct {
	Flag  string
	Value string
	Err   error
}

func (e *DirectiveError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("--%s: %v", e.Flag, e.Err)
	}
	return fmt.Sprintf("--%s %q: %v", e.Flag, e.Value, e.Err)
}

func (e *DirectiveError) Unwrap() error { return e.Err }

// Options accumulates directives while flags are parsed. Register it on a
// flag set with AddFlags, parse, check Err, then freeze it with Tool.
type Options struct {
	set         *params.Set
	description string
	source      DescriptionSource
	err         error

	readFile func(string) ([]byte, error)
}

// NewOptions returns options starting from the default parameter set.
func NewOptions() *Options {
	return &Options{
		set:         params.Defaults(),
		description: DefaultDescription,
		source:      DescriptionDefault,
		readFile:    os.ReadFile,
	}
}

// AddFlags registers every directive on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.VarPF(o.toggle(FlagAllRequired, true), FlagAllRequired, "",
		"mark every parameter required").NoOptDefVal = "true"
	fs.VarPF(o.toggle(FlagAllOptional, false), FlagAllOptional, "",
		"mark every parameter optional, including prompt").NoOptDefVal = "true"

	fs.Var(o.directive(FlagRequired, "names", func(v string) error { return o.mark(v, true) }),
		FlagRequired, "comma-separated parameter names to mark required")
	fs.Var(o.directive(FlagOptional, "names", func(v string) error { return o.mark(v, false) }),
		FlagOptional, "comma-separated parameter names to mark optional")
	fs.Var(o.directive(FlagAddParam, "spec", o.addParam),
		FlagAddParam, "add a parameter: name:kind:description[:required|optional] (kind: string, number, array, any)")
	fs.Var(o.directive(FlagToolDescription, "text", o.inlineDescription),
		FlagToolDescription, "override the tool description")
	fs.Var(o.directive(FlagToolDescriptionFile, "path", o.fileDescription),
		FlagToolDescriptionFile, "read the tool description from a file")
}

// Err returns the first directive error, if any.
func (o *Options) Err() error {
	return o.err
}

// Tool freezes the accumulated directives. Later directives on o do not
// affect the returned Tool.
func (o *Options) Tool() *Tool {
	return &Tool{
		name:        DefaultToolName,
		description: o.description,
		source:      o.source,
		parameters:  o.set.Clone(),
	}
}

func (o *Options) fail(flag, value string, err error) error {
	derr := &DirectiveError{Flag: flag, Value: value, Err: err}
	if o.err == nil {
		o.err = derr
	}
	return derr
}

func (o *Options) toggle(flag string, required bool) pflag.Value {
	return &toggleValue{
		apply: func() { o.set.SetAllRequired(required) },
		fail:  func(value string, err error) error { return o.fail(flag, value, err) },
	}
}

func (o *Options) directive(flag, typ string, apply func(string) error) pflag.Value {
	return &directiveValue{
		typ: typ,
		apply: func(value string) error {
			if err := apply(value); err != nil {
				return o.fail(flag, value, err)
			}
			return nil
		},
	}
}

func (o *Options) mark(csv string, required bool) error {
	names, err := splitNames(csv)
	if err != nil {
		return err
	}
	return o.set.SetRequired(names, required)
}

func (o *Options) addParam(spec string) error {
	def, err := params.ParseSpec(spec)
	if err != nil {
		return err
	}
	return o.set.Add(def)
}

func (o *Options) inlineDescription(text string) error {
	if err := o.checkDescriptionUnset(DescriptionInline); err != nil {
		return err
	}
	return o.setDescription(text, DescriptionInline)
}

func (o *Options) fileDescription(path string) error {
	if err := o.checkDescriptionUnset(DescriptionFile); err != nil {
		return err
	}
	data, err := o.readFile(path)
	if err != nil {
		return fmt.Errorf("read description file: %w", err)
	}
	return o.setDescription(string(data), DescriptionFile)
}

func (o *Options) checkDescriptionUnset(src DescriptionSource) error {
	switch o.source {
	case DescriptionDefault:
		return nil
	case src:
		return fmt.Errorf("%w by an earlier %s", ErrDescriptionAlreadySet, src)
	default:
		return fmt.Errorf("%w: %s was already given", ErrDescriptionConflict, o.source)
	}
}

func (o *Options) setDescription(text string, src DescriptionSource) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyToolDescription
	}
	o.description = text
	o.source = src
	return nil
}

// splitNames splits a comma-separated list. Blank entries, including a
// trailing comma, are rejected with their 1-based position.
func splitNames(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, ErrNoNames
	}
	parts := strings.Split(csv, ",")
	names := make([]string, 0, len(parts))
	for i, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("%w: entry %d of %d is blank", ErrEmptyNameEntry, i+1, len(parts))
		}
		names = append(names, name)
	}
	return names, nil
}

// directiveValue is a pflag.Value applying each occurrence immediately, so
// directives take effect in command-line order.
type directiveValue struct {
	typ   string
	last  string
	apply func(string) error
}

func (v *directiveValue) String() string { return v.last }

func (v *directiveValue) Type() string { return v.typ }

func (v *directiveValue) Set(s string) error {
	v.last = s
	return v.apply(s)
}

// toggleValue is a boolean pflag.Value whose true setting applies a directive.
type toggleValue struct {
	set   bool
	apply func()
	fail  func(string, error) error
}

func (v *toggleValue) String() string { return strconv.FormatBool(v.set) }

func (v *toggleValue) Type() string { return "bool" }

func (v *toggleValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return v.fail(s, err)
	}
	v.set = b
	if b {
		v.apply()
	}
	return nil
}
