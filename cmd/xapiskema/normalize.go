package main

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	xapiskema "github.com/reoring/xapiskema"
)

type NormalizeOptions struct {
	Indent bool
}

func NewNormalizeCommand(root *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the canonical JSON form of a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := root.source(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			s := root.serializer()
			st, err := s.DecodeStatement(cmd.Context(), src)
			if err != nil {
				is, _ := xapiskema.FirstIssue(err)
				return fmt.Errorf("%s: %s", args[0], formatIssue(is))
			}
			out, err := s.EncodeStatement(cmd.Context(), st)
			if err != nil {
				return err
			}
			if opts.Indent {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out, "", "  "); err != nil {
					return err
				}
				out = buf.Bytes()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.Indent, "indent", false, "indent the output")

	return cmd
}
