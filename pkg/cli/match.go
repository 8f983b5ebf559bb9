package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/internal/matching"
	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/validation"
)

// MatchOutput represents match JSON output.
type MatchOutput struct {
	Matched    bool                `json:"matched"`
	Mismatches []matching.Mismatch `json:"mismatches"`
}

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var (
		rulesFile    string
		expectedFile string
		actualFile   string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Compare an actual body with the expected body under matching rules",
		Long: `Compare two JSON or YAML bodies. Paths covered by body matching rules are
checked with those rules; everything else must be equal. The command exits
with an error when any mismatch is found.`,
		Example: `  pactcore match --rules orders.pact.yaml --expected expected.json --actual actual.json
  curl -s localhost:8080/orders/1 | pactcore match --rules r.yaml --expected e.json --actual - --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, _, err := opts.loadDocuments(rulesFile, validation.KindAuto)
			if err != nil {
				return err
			}
			body, ok := rules.RulesForCategory(contract.CategoryBody)
			if !ok {
				body = contract.NewRuleCategory(contract.CategoryBody)
			}
			expected, err := decodeInput(cmd, expectedFile)
			if err != nil {
				return err
			}
			actual, err := decodeInput(cmd, actualFile)
			if err != nil {
				return err
			}

			mismatches := matching.CompareBody(body, expected, actual)
			out := MatchOutput{Matched: len(mismatches) == 0, Mismatches: mismatches}
			if out.Mismatches == nil {
				out.Mismatches = []matching.Mismatch{}
			}

			w := stdout(cmd)
			if opts.jsonOutput {
				if err := output.JSON(w, out); err != nil {
					return err
				}
			} else if out.Matched {
				fmt.Fprintln(w, "Bodies match")
			} else {
				tw := output.Table(w)
				fmt.Fprintln(tw, "PATH\tMISMATCH")
				for _, m := range mismatches {
					fmt.Fprintf(tw, "%s\t%s\n", m.Path, m.Reason)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if !out.Matched {
				return fmt.Errorf("%w: %d mismatch(es)", ErrBodyMismatch, len(mismatches))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "Rules or document file (default: documents from the configuration)")
	cmd.Flags().StringVar(&expectedFile, "expected", "", "Expected body (JSON or YAML)")
	cmd.Flags().StringVar(&actualFile, "actual", "", "Actual body (JSON or YAML), or - for stdin")
	_ = cmd.MarkFlagRequired("expected")
	_ = cmd.MarkFlagRequired("actual")
	return cmd
}
