package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/validation"
)

// SelectOutput represents select JSON output.
type SelectOutput struct {
	Category string           `json:"category"`
	Path     []string         `json:"path"`
	Found    bool             `json:"found"`
	Logic    string           `json:"combine,omitempty"`
	Cascaded bool             `json:"cascaded"`
	Matchers []map[string]any `json:"matchers"`
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var (
		rulesFile string
		category  string
		path      string
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the best matching rule list for a path",
		Long: `Select the rule list that applies to a concrete path.

For body and metadata rules the most specific expression wins, and a rule
found through an ancestor of the path is reported as cascaded. The path is
given as dot-separated segments; array indexes are plain numbers.`,
		Example: `  pactcore select --rules orders.rules.yaml --path items.0.id
  pactcore select --rules orders.pact.json --category header --path Accept --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := contract.ParseCategory(category)
			if err != nil {
				return err
			}
			rules, _, err := opts.loadDocuments(rulesFile, validation.KindAuto)
			if err != nil {
				return err
			}

			out := SelectOutput{Category: string(cat), Path: segments(path), Matchers: []map[string]any{}}
			var best contract.RuleList
			if rc, ok := rules.RulesForCategory(cat); ok {
				best = rc.SelectBestMatcher(out.Path)
				if !best.IsEmpty() {
					out.Found = true
					out.Logic = best.Logic.String()
					out.Cascaded = best.Cascaded
					for _, r := range best.Rules {
						out.Matchers = append(out.Matchers, r.ToJSON())
					}
				}
			}
			opts.log.Debug("rule selected", "category", out.Category, "path", out.Path, "found", out.Found)

			w := stdout(cmd)
			if opts.jsonOutput {
				return output.JSON(w, out)
			}
			if !out.Found {
				fmt.Fprintf(w, "No %s rules apply to %v\n", out.Category, out.Path)
				return nil
			}
			fmt.Fprintf(w, "Combine: %s  Cascaded: %t\n", out.Logic, out.Cascaded)
			for i, r := range best.Rules {
				fmt.Fprintf(w, "  %d. %s\n", i+1, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "Rules or document file (default: documents from the configuration)")
	cmd.Flags().StringVar(&category, "category", "body", "Rule category: body, header, query, path, method, status, metadata")
	cmd.Flags().StringVar(&path, "path", "", "Concrete path, for example items.0.id")
	return cmd
}
