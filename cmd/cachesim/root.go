package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "cachesim",
	Short: "Cachesim replays memory traces against a modeled " +
		"set-associative cache.",
	Long: `Cachesim is an offline cache analysis tool. It replays a trace of ` +
		`memory accesses against a set-associative cache of configurable ` +
		`geometry and reports hit/miss rates, write-back counts, and the ` +
		`derived cycle and IPC metrics.`,
}

// intSetting resolves an integer setting: an explicitly passed flag
// wins, then the environment (populated from .env before flag parsing),
// then the flag's default.
func intSetting(cmd *cobra.Command, flag, envKey string) int {
	value, _ := cmd.Flags().GetInt(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}

	return envInt(envKey, value)
}

// envInt returns the integer value of an environment variable, or the
// fallback when the variable is unset or unparsable.
func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return i
}
