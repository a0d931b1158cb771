package cli

import (
	"github.com/spf13/cobra"
)

var (
	env       string
	configDir string
	verbose   bool
	rootCmd   = &cobra.Command{
		Use:   "nativebridge",
		Short: "Native bridge for spell-check suggestions and push token sync",
		Long:  `nativebridge exposes the device spell checker and messaging token sync to the web layer over HTTP bridge calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Config environment (loads configs/config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "Directory holding config files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
}

func Execute() error {
	return rootCmd.Execute()
}
