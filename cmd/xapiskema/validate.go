package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	xapiskema "github.com/reoring/xapiskema"
)

func NewValidateCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that each file holds a valid statement",
		Long: `Decode and denormalize every FILE ("-" reads stdin). Each invalid file is
reported with the issue code and the JSON Pointer of the offending field.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := root.serializer()
			failed := 0
			for _, name := range args {
				src, err := root.source(name, cmd.InOrStdin())
				if err != nil {
					return err
				}
				st, err := s.DecodeStatement(cmd.Context(), src)
				if err != nil {
					failed++
					is, _ := xapiskema.FirstIssue(err)
					root.log.WithFields(logrus.Fields{"file": name, "code": is.Code, "path": is.Path}).Debug("statement rejected")
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, formatIssue(is))
					continue
				}
				root.log.WithFields(logrus.Fields{"file": name, "objectType": st.Object.ObjectType()}).Info("statement accepted")
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d statements are invalid", failed, len(args))
			}
			return nil
		},
	}
}
