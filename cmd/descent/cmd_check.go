package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/descent/sudoers"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>...",
		Short:         "Report every malformed line of the given sudoers files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read sudoers file: %w", err)
				}

				_, err = sudoers.ParseFile(filename, string(data))
				var errs sudoers.ErrorList
				if errors.As(err, &errs) {
					for _, e := range errs {
						fmt.Fprintln(cmd.ErrOrStderr(), e)
					}
					failed++
					continue
				}
				if err != nil {
					return err
				}
				log.Infof("%s: ok", filename)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
			}
			return nil
		},
	}
}
