package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/descent/sudoers"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a sudoers file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read sudoers file: %w", err)
			}

			formatted, err := sudoers.Format(filename, string(data))
			if err != nil {
				return fmt.Errorf("format sudoers file: %w", err)
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), formatted)
				return nil
			}
			if formatted == string(data) {
				log.Debugf("%s: already formatted", filename)
				return nil
			}
			info, err := os.Stat(filename)
			if err != nil {
				return fmt.Errorf("stat %s: %w", filename, err)
			}
			if err := os.WriteFile(filename, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write sudoers file: %w", err)
			}
			log.Infof("%s: formatted", filename)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the file instead of stdout")

	return cmd
}
