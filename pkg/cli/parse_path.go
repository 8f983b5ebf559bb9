package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// TokenOutput is one token in parse-path JSON output.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// ParsePathOutput represents parse-path JSON output.
type ParsePathOutput struct {
	Expression string        `json:"expression"`
	JSONPath   string        `json:"jsonPath"`
	Tokens     []TokenOutput `json:"tokens"`
}

func newParsePathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-path <expression>",
		Short: "Parse a path expression and print its tokens",
		Example: `  pactcore parse-path '$.items[*].id'
  pactcore parse-path "$['a b'].c" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := pathexp.Parse(args[0])
			if err != nil {
				return err
			}

			out := ParsePathOutput{
				Expression: e.String(),
				JSONPath:   e.JSONPath().String(),
				Tokens:     make([]TokenOutput, 0, e.Len()),
			}
			for _, tok := range e.Tokens() {
				t := TokenOutput{Kind: tok.Kind.String(), Name: tok.Name}
				if tok.Kind == pathexp.Index {
					t.Index = &tok.Index
				}
				out.Tokens = append(out.Tokens, t)
			}

			w := stdout(cmd)
			if opts.jsonOutput {
				return output.JSON(w, out)
			}
			fmt.Fprintf(w, "Expression: %s\n", out.Expression)
			fmt.Fprintf(w, "JSONPath:   %s\n", out.JSONPath)
			tw := output.Table(w)
			fmt.Fprintln(tw, "#\tKIND\tVALUE")
			for i, tok := range e.Tokens() {
				value := tok.Name
				if tok.Kind == pathexp.Index {
					value = fmt.Sprint(tok.Index)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, tok.Kind, value)
			}
			return tw.Flush()
		},
	}
}
