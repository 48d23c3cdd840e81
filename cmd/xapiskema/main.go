package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/i18n"
	"github.com/reoring/xapiskema/normalizer"
)

const appName = "xapiskema"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// RootOptions holds the flags shared by every subcommand.
type RootOptions struct {
	Format   string
	MaxDepth int
	MaxBytes int64
	Lang     string
	LogLevel string

	log *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{log: logrus.New()}

	cmd := &cobra.Command{
		Use:           fmt.Sprintf("%s [command]", appName),
		Short:         "Validate and normalize xAPI statements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "input format: json or yaml (default: from file extension)")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", 32, "maximum document nesting depth (0 disables the limit)")
	cmd.PersistentFlags().Int64Var(&opts.MaxBytes, "max-bytes", 1<<20, "maximum document size in bytes (0 disables the limit)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language of issue messages: en or ja")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewSchemaCommand())
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// Complete applies the shared flags.
func (o *RootOptions) Complete(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	o.log.SetLevel(level)
	o.log.SetOutput(cmd.ErrOrStderr())

	switch o.Lang {
	case "en", "ja":
		i18n.SetLanguage(o.Lang)
	default:
		return fmt.Errorf("unsupported language %q", o.Lang)
	}
	switch o.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q", o.Format)
	}
	return nil
}

func (o *RootOptions) serializer() *normalizer.Serializer {
	return normalizer.New(normalizer.WithReadOpt(xapiskema.ReadOpt{
		MaxDepth: o.MaxDepth,
		MaxBytes: o.MaxBytes,
		Warnings: func(is xapiskema.Issue) {
			o.log.WithFields(logrus.Fields{"code": is.Code, "path": is.Path}).Warn(is.Message)
		},
	}))
}

// source opens name ("-" is stdin) as a JSON or YAML source.
func (o *RootOptions) source(name string, stdin io.Reader) (xapiskema.Source, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	format := o.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	o.log.WithFields(logrus.Fields{"file": name, "format": format, "bytes": len(b)}).Debug("decoding statement")
	if format == "yaml" {
		return xapiskema.YAMLBytes(b), nil
	}
	return xapiskema.JSONBytes(b), nil
}

func formatIssue(is xapiskema.Issue) string {
	s := fmt.Sprintf("%s at %s: %s", is.Code, is.Path, is.Message)
	if is.Hint != "" {
		s += " (" + is.Hint + ")"
	}
	return s
}
