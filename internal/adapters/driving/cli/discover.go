package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var discoverJSON bool

var discoverCmd = &cobra.Command{
	Use:   "discover [url]",
	Short: "Locate a site's structured content endpoint",
	Long: `Runs the discovery signal chain for a URL without retrieving content.

Signals are checked in priority order: the page's Link response header,
a <link rel="alternate"> tag, an AIO-Content directive in robots.txt,
and finally the conventional default path.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output the target as JSON")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if retrieverService == nil {
		return errors.New("retriever service not configured")
	}

	target, err := retrieverService.Discover(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if target == nil {
		cmd.Println("No structured content endpoint found.")
		return nil
	}

	if discoverJSON {
		data, err := json.MarshalIndent(target, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal target: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(render(styleTitle, target.URL))
	printField(cmd, "Signal", string(target.Method))
	return nil
}
