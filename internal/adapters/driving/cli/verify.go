package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [url]",
	Short: "Verify a site's structured document",
	Long: `Fetches the structured document for a URL and reports its
integrity verdict: version support, index/content cross-referencing,
signature validity, and per-chunk hash trust.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	report, err := retrieverService.Verify(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No structured content endpoint found.")
			return nil
		}
		return fmt.Errorf("verify failed: %w", err)
	}

	cmd.Println(render(styleTitle, report.TargetURL))
	cmd.Println()
	printField(cmd, "Version", report.Version)
	printField(cmd, "Chunks", fmt.Sprintf("%d", report.ChunkCount))

	if report.Result.Valid {
		printField(cmd, "Verdict", render(styleTrusted, "valid"))
	} else {
		printField(cmd, "Verdict", render(styleInvalid, fmt.Sprintf("invalid (%s)", report.Result.Reason)))
	}
	if report.Result.Signed {
		printField(cmd, "Signed", render(styleTrusted, "yes"))
	} else {
		printField(cmd, "Signed", "no")
	}

	if len(report.Result.ChunkTrust) > 0 {
		cmd.Println()
		ids := make([]string, 0, len(report.Result.ChunkTrust))
		for id := range report.Result.ChunkTrust {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if report.Result.ChunkTrust[id] {
				cmd.Printf("  %s %s\n", render(styleTrusted, "ok"), id)
			} else {
				cmd.Printf("  %s %s\n", render(styleInvalid, "BAD"), id)
			}
		}
	}

	return nil
}
