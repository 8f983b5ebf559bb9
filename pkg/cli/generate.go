package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/internal/matching"
	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/generate"
	"github.com/getmockd/pactcore/pkg/validation"
)

// GenerateOutput represents generate JSON output.
type GenerateOutput struct {
	Kind string `json:"kind"`
	Mode string `json:"mode"`
	Body string `json:"body"`
}

var bodyKindNames = map[generate.BodyKind]string{
	generate.BodyText: "text",
	generate.BodyJSON: "json",
	generate.BodyXML:  "xml",
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		generatorsFile string
		bodyFile       string
		contentType    string
		mode           string
		contextPairs   []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Apply body generators to a JSON, XML or text body",
		Long: `Apply the body generators of a document to an example body and print the
result. The body kind is taken from --content-type, or sniffed from the body.

ArrayContains generators pick the variant of each list element with the
element's matching rules. Values for ProviderState generators come from the
configuration's context and --context key=value pairs.`,
		Example: `  pactcore generate --generators orders.pact.yaml --body order.json
  cat order.xml | pactcore generate --generators g.yaml --body - --content-type application/xml
  pactcore generate --generators g.yaml --body order.json --mode provider --context id=42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = opts.cfg.Mode
			}
			testMode, err := contract.ParseTestMode(mode)
			if err != nil {
				return err
			}
			ctx, err := opts.generatorContext(contextPairs)
			if err != nil {
				return err
			}
			_, gens, err := opts.loadDocuments(generatorsFile, validation.KindAuto)
			if err != nil {
				return err
			}
			if gens.IsEmpty() {
				return ErrNoGenerators
			}
			body, err := readInput(cmd, bodyFile)
			if err != nil {
				return err
			}

			result, err := opts.engine.ApplyBodyGenerators(contentType, body, gens, testMode, generate.Context(ctx), matching.RuleVariantMatcher{})
			if err != nil {
				return err
			}

			w := stdout(cmd)
			if opts.jsonOutput {
				return output.JSON(w, GenerateOutput{
					Kind: bodyKindNames[generate.DetectBodyKind(contentType, body)],
					Mode: testMode.String(),
					Body: string(result),
				})
			}
			if _, err := w.Write(result); err != nil {
				return err
			}
			_, err = w.Write([]byte("\n"))
			return err
		},
	}

	cmd.Flags().StringVar(&generatorsFile, "generators", "", "Generators or document file (default: documents from the configuration)")
	cmd.Flags().StringVar(&bodyFile, "body", "", "Body file, or - for stdin")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Body content type (default: sniffed)")
	cmd.Flags().StringVar(&mode, "mode", "", "Test mode: consumer or provider (default: from the configuration)")
	cmd.Flags().StringArrayVar(&contextPairs, "context", nil, "Generator context value as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}
