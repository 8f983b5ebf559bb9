package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/config"
	"github.com/getmockd/pactcore/pkg/validation"
)

// ValidateOutput represents validate JSON output.
type ValidateOutput struct {
	Valid   bool                 `json:"valid"`
	Results []*validation.Result `json:"results"`
}

// globGroup is a set of patterns resolved against base and checked as kind.
type globGroup struct {
	base     string
	patterns []string
	kind     validation.Kind
}

// validateTarget is a file and the kind it is checked as.
type validateTarget struct {
	path string
	kind validation.Kind
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "validate [glob...]",
		Short: "Validate matching rule and generator documents",
		Long: `Validate rule and generator documents against the pactcore schema, then
check every path expression, regular expression and date pattern they use.

Without arguments the rules, generators and documents globs of the
configuration are validated. Globs support ** for recursive matching.`,
		Example: `  pactcore validate
  pactcore validate 'contracts/**/*.yaml'
  pactcore validate --kind generators gens/*.json --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := validation.ParseKind(kindName)
			if err != nil {
				return err
			}
			targets, err := opts.validateTargets(args, kind)
			if err != nil {
				return err
			}

			v := validation.NewValidator()
			out := ValidateOutput{Valid: true, Results: make([]*validation.Result, 0, len(targets))}
			for _, t := range targets {
				result := v.ValidateFile(t.path, t.kind)
				if !result.Valid {
					out.Valid = false
				}
				opts.log.Debug("document validated", "path", t.path, "valid", result.Valid, "errors", len(result.Errors))
				out.Results = append(out.Results, result)
			}

			w := stdout(cmd)
			if opts.jsonOutput {
				if err := output.JSON(w, out); err != nil {
					return err
				}
			} else {
				if len(targets) == 0 {
					output.Warn(cmd.ErrOrStderr(), "no documents matched")
				}
				for _, r := range out.Results {
					if r.Valid {
						fmt.Fprintf(w, "✓ %s\n", r.Source)
						continue
					}
					fmt.Fprintf(w, "✗ %s\n", r.Source)
					for _, e := range r.Errors {
						fmt.Fprintf(w, "    %s\n", e)
					}
				}
			}
			if !out.Valid {
				return ErrInvalidDocuments
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "auto", "Document kind for glob arguments: auto, document, rules, generators")
	return cmd
}

// validateTargets expands the argument globs, or the configured globs when
// there are no arguments.
func (o *rootOptions) validateTargets(args []string, kind validation.Kind) ([]validateTarget, error) {
	var groups []globGroup
	if len(args) > 0 {
		groups = append(groups, globGroup{".", args, kind})
	} else {
		base := o.cfg.BaseDir()
		groups = append(groups,
			globGroup{base, o.cfg.Rules, validation.KindRules},
			globGroup{base, o.cfg.Generators, validation.KindGenerators},
			globGroup{base, o.cfg.Documents, validation.KindAuto},
		)
	}

	var targets []validateTarget
	for _, g := range groups {
		files, err := config.ExpandGlobs(g.base, g.patterns)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			targets = append(targets, validateTarget{path: f, kind: g.kind})
		}
	}
	return targets, nil
}
