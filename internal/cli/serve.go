package cli

import (
	protocol "nativebridge/protocal"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP bridge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return protocol.ServeHTTP(configDir, env, verbose)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
