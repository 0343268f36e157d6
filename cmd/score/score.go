package score

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/surimlab/challenge500/internal/conf"
	"github.com/surimlab/challenge500/internal/textscore"
	"golang.org/x/text/unicode/norm"
)

// Command creates the score command, which evaluates a body of text offline
// using the local heuristic only.
func Command(settings *conf.Settings) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score a text offline",
		Long:  "Evaluate a submission body from a file or stdin using the local heuristic and print the result as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			body := norm.NFC.String(string(raw))
			if body == "" {
				return fmt.Errorf("empty input")
			}
			if len(body) > settings.Challenge.MaxBytes {
				return fmt.Errorf("input is %d bytes, limit is %d", len(body), settings.Challenge.MaxBytes)
			}

			scorer := textscore.NewScorer(textscore.Config{MaxBytes: settings.Challenge.MaxBytes})
			eval := scorer.Score(title, body)

			out := struct {
				textscore.Evaluation
				DisplayScore int  `json:"displayScore"`
				IsLoser      bool `json:"isLoser"`
			}{
				Evaluation:   eval,
				DisplayScore: textscore.DisplayScore(eval.TotalScore),
				IsLoser:      textscore.IsLoserScore(eval.TotalScore),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Optional submission title")

	return cmd
}
