package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage trusted signing keys",
	Long: `Commands for the local trust store of ed25519 public keys.

Documents signed with a key in the trust store verify as signed and
receive a zero noise score.`,
}

var keysAddCmd = &cobra.Command{
	Use:   "add [key-id] [base64-public-key]",
	Short: "Add a trusted public key",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeysAdd,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trusted key IDs",
	Args:  cobra.NoArgs,
	RunE:  runKeysList,
}

func init() {
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysListCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	if keyStore == nil {
		return errors.New("key store not configured")
	}

	if err := keyStore.Add(args[0], args[1]); err != nil {
		return fmt.Errorf("adding key: %w", err)
	}

	cmd.Printf("Added key %s\n", args[0])
	return nil
}

func runKeysList(cmd *cobra.Command, _ []string) error {
	if keyStore == nil {
		return errors.New("key store not configured")
	}

	ids := keyStore.List()
	if len(ids) == 0 {
		cmd.Println("No trusted keys.")
		return nil
	}

	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}
