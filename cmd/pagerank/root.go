package main

import (
	"errors"
	"io/fs"

	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/lioia/pagerank/pkg/utils"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagerank",
		Short: "Rank the pages of a link graph",
		Long: `pagerank estimates the PageRank of every page of a link graph twice:
by sampling a random surfer and by iterating the PageRank recurrence.

A graph is either a directory of HTML pages or an edge list ("from to" per line).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			env := utils.ReadEnvVars()
			verbose, _ := cmd.Flags().GetBool("verbose")
			utils.InitLog(env.EngineLog || verbose, env.ServerLog || verbose)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "config.json", "JSON file with the ranking parameters")

	cmd.AddCommand(NewRankCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewWorkerCmd())
	cmd.AddCommand(NewSubmitCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	utils.FailOnError("pagerank", NewRootCmd().Execute())
}

func addConfigFlags(cmd *cobra.Command) {
	defaults := pagerank.DefaultConfig()
	cmd.Flags().Float64P("damping", "d", defaults.Damping, "Damping factor, in (0, 1)")
	cmd.Flags().IntP("samples", "n", defaults.Samples, "Pages visited by the sampling estimator")
	cmd.Flags().Float64("threshold", defaults.Threshold, "Convergence threshold of the iterative estimator")
	cmd.Flags().Int("max-iterations", defaults.MaxIterations, "Iteration cap of the iterative estimator")
	cmd.Flags().Int64("seed", 0, "Sampling seed (0: random)")
}

// loadConfig layers defaults, the configuration file and the flags set on
// the command line. Without --config the file named by $CONFIG is read;
// a missing file is only an error when --config was given.
func loadConfig(cmd *cobra.Command) (pagerank.Config, error) {
	cfg := pagerank.DefaultConfig()
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if !flags.Changed("config") {
		path = utils.ReadEnvVars().Config
	}
	if err := utils.LoadConfiguration(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || flags.Changed("config") {
			return cfg, err
		}
	}
	if flags.Changed("damping") {
		cfg.Damping, _ = flags.GetFloat64("damping")
	}
	if flags.Changed("samples") {
		cfg.Samples, _ = flags.GetInt("samples")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	return cfg, cfg.Validate()
}
