package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nativebridge/configs"
	"nativebridge/internal/domain"
	protocol "nativebridge/protocal"

	"github.com/spf13/cobra"
)

var maxResults int

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Fetch spell-check suggestions once and print them as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		manager := protocol.NewSuggestionManager(ctx, cfg.SpellCheck)
		defer manager.Close()

		result, err := manager.GetSuggestions(ctx, domain.SuggestionRequest{
			Text:       strings.Join(args, " "),
			MaxResults: maxResults,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether a spell checker session can be opened",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		manager := protocol.NewSuggestionManager(ctx, cfg.SpellCheck)
		defer manager.Close()
		return printJSON(cmd, manager.CheckAvailability())
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&maxResults, "max", "n", 0, "Maximum suggestions to return (default from config)")
	rootCmd.AddCommand(suggestCmd, checkCmd)
}

func loadConfig() *configs.Config {
	configs.InitViper(configDir, env)
	cfg := configs.GetViper()
	protocol.SetupLogging(cfg.App, verbose)
	return cfg
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
