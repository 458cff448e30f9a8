package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

var (
	parseQuery   string
	parseJSON    bool
	parseNoCache bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [url]",
	Short: "Retrieve clean content for a URL",
	Long: `Retrieves machine-readable content for a URL.

The site's structured AIO endpoint is discovered and verified when one
exists; otherwise content is extracted from the raw HTML. Pass --query
to retrieve only the sections relevant to a topic.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseQuery, "query", "q", "", "retrieve only sections matching this query")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output the envelope as JSON")
	parseCmd.Flags().BoolVar(&parseNoCache, "no-cache", false, "bypass the envelope cache")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	opts := domain.ParseOptions{
		Query:       parseQuery,
		BypassCache: parseNoCache,
	}

	envelope, err := retrieverService.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if parseJSON {
		return outputEnvelopeJSON(cmd, envelope)
	}
	return outputEnvelope(cmd, envelope)
}

func outputEnvelopeJSON(cmd *cobra.Command, envelope *domain.ContentEnvelope) error {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputEnvelope(cmd *cobra.Command, envelope *domain.ContentEnvelope) error {
	cmd.Println(render(styleTitle, envelope.SourceURL))
	cmd.Println()

	printField(cmd, "Source", string(envelope.SourceType))
	printField(cmd, "Method", string(envelope.RetrievalMethod))
	if envelope.AIOVersion != "" {
		printField(cmd, "Version", envelope.AIOVersion)
	}
	printField(cmd, "Tokens", fmt.Sprintf("~%d", envelope.TokenEstimate))

	noise := fmt.Sprintf("%.2f", envelope.NoiseScore)
	switch {
	case envelope.NoiseScore == 0:
		noise = render(styleTrusted, noise+" (signed)")
	case envelope.SourceType == domain.SourceTypeFallback:
		noise = render(styleWarn, noise+" (scraped)")
	}
	printField(cmd, "Noise", noise)

	if len(envelope.Chunks) > 0 {
		printField(cmd, "Chunks", fmt.Sprintf("%d", len(envelope.Chunks)))
	}

	cmd.Println()
	cmd.Println(envelope.Narrative)
	return nil
}

func printField(cmd *cobra.Command, label, value string) {
	cmd.Printf("%s %s\n", render(styleLabel, fmt.Sprintf("%-8s", label+":")), render(styleValue, value))
}
