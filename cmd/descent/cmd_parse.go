package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/descent/sudoers"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a sudoers file and dump the rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read sudoers file: %w", err)
			}

			file, err := sudoers.ParseFile(filename, string(data))
			if err != nil {
				return fmt.Errorf("parse sudoers file: %w", err)
			}
			log.Debugf("%s: %d rules, %d comments", filename, len(file.Rules), len(file.Comments))

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				if err := sudoers.NewJSONEncoder(out).Encode(file); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Fprintln(out)
			case "text":
				for _, r := range file.Rules {
					fmt.Fprintf(out, "%d: %s\n", r.Line, r)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")

	return cmd
}
