package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/pkg/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after flags and environment overrides were
applied. The source file, if any, is printed as a comment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := stdout(cmd)
			if opts.jsonOutput {
				data, err := config.ToJSON(opts.cfg)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			}
			data, err := config.ToYAML(opts.cfg)
			if err != nil {
				return err
			}
			source := opts.cfg.Path()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(w, "# source: %s\n", source)
			_, err = w.Write(data)
			return err
		},
	}
}
