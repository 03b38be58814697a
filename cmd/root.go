package cmd

import "github.com/spf13/cobra"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Pre-race tire strategy planner",
	Long: `pitwall estimates per-compound tire degradation from weighted
historical race data and searches feasible pit-stop strategies for the
lowest predicted total race time.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
