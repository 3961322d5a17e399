package main

import (
	"fmt"

	"github.com/dhamidi/descent/sudoers"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var startProduction string
	var check bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the EBNF grammar of the sudoers subset",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := sudoers.VerifyGrammar(startProduction); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return err
				}
				log.Infof("grammar verified from %s", startProduction)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), sudoers.Grammar)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", sudoers.Start, "start production for verification")
	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")

	return cmd
}
