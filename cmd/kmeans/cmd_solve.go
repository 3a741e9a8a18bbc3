package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/dataset"
)

type solveFlags struct {
	file    string
	k       int
	init    string
	seed    int64
	maxIter int
}

func newSolveCmd(g *globalFlags) *cobra.Command {
	f := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Cluster the points of a run file",
		Long: `Reads a YAML or JSON run file (optionally .gz, .zst or .lz4 compressed),
initializes the clusters and iterates until every mean is stable.
Flags override the settings stored in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, g, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "run file to cluster")
	cmd.Flags().IntVar(&f.k, "k", 0, "number of clusters (overrides the file)")
	cmd.Flags().StringVar(&f.init, "init", "", "initialization method: random or partition")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed")
	cmd.Flags().IntVar(&f.maxIter, "max-iter", 0, "stop after this many rounds (0 = until converged)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSolve(cmd *cobra.Command, g *globalFlags, f *solveFlags) error {
	if err := g.checkOutput(); err != nil {
		return err
	}
	logger, err := g.logger(cmd)
	if err != nil {
		return err
	}

	run, err := dataset.Open(f.file)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		if len(run.Clusters) > 0 {
			return errors.New("--k cannot be combined with preset clusters")
		}
		run.K = f.k
	}

	opts := []kmeans.Option{kmeans.WithLogger(logger)}
	if flags.Changed("init") {
		opts = append(opts, kmeans.WithInitMethod(kmeans.InitMethod(f.init)))
	}
	if flags.Changed("seed") {
		opts = append(opts, kmeans.WithSeed(f.seed))
	}
	if flags.Changed("max-iter") {
		opts = append(opts, kmeans.WithMaxIterations(f.maxIter))
	}

	km, err := run.Build(opts...)
	if err != nil {
		return err
	}
	if err := km.Initialize(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if err := km.Solve(cmd.Context()); err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	return g.report(cmd.OutOrStdout(), km)
}
