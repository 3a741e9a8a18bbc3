package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/dataset"
)

var demoDimensions = []string{"linkedin.com", "bright.com", "job", "company", "x", "y"}

func demoValues(linkedin, bright, job, company int) map[string]any {
	return map[string]any{
		"linkedin.com": linkedin,
		"bright.com":   bright,
		"job":          job,
		"company":      company,
		"x":            1,
		"y":            1,
	}
}

// demoScenarios returns the URL-feature runs: eleven crawled URLs split into
// three clusters, then one new URL placed against known cluster means.
func demoScenarios() []*dataset.File {
	linkedinJob := func(name string) dataset.Point {
		return dataset.Point{Name: name, Values: demoValues(100, 0, 10, 0)}
	}
	linkedinCompany := func(name string) dataset.Point {
		return dataset.Point{Name: name, Values: demoValues(100, 0, 0, 10)}
	}

	fresh := &dataset.File{
		Dimensions: demoDimensions,
		K:          3,
		Points: []dataset.Point{
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=2&y=2"),
			linkedinCompany("linkedin.com/company/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			linkedinCompany("linkedin.com/company/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			linkedinCompany("linkedin.com/company/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			linkedinJob("linkedin.com/job/1?x=1&y=2"),
			{Name: "bright.com/job/1?x=1&y=2", Values: demoValues(0, 100, 10, 0)},
		},
	}

	preset := &dataset.File{
		Dimensions: demoDimensions,
		Clusters: []dataset.Cluster{
			{Name: "linkedin.com/job", Mean: demoValues(100, 0, 10, 0)},
			{Name: "bright.com/job", Mean: demoValues(0, 100, 10, 0)},
			{Name: "linkedin.com/company", Mean: demoValues(100, 0, 0, 10)},
		},
		Points: []dataset.Point{
			{Name: "linkedin.com/job/2?x=1&y=2", Values: demoValues(80, 10, 10, 0)},
		},
	}

	return []*dataset.File{fresh, preset}
}

type demoFlags struct {
	seed int64
}

func newDemoCmd(g *globalFlags) *cobra.Command {
	f := &demoFlags{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Cluster a small set of URL features, then classify a new URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, g, f)
		},
	}
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: time based)")

	return cmd
}

func runDemo(cmd *cobra.Command, g *globalFlags, f *demoFlags) error {
	if err := g.checkOutput(); err != nil {
		return err
	}
	logger, err := g.logger(cmd)
	if err != nil {
		return err
	}

	opts := []kmeans.Option{kmeans.WithLogger(logger)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, kmeans.WithSeed(f.seed))
	}

	out := cmd.OutOrStdout()
	for _, run := range demoScenarios() {
		if err := run.Validate(); err != nil {
			return err
		}
		km, err := run.Build(opts...)
		if err != nil {
			return err
		}

		if g.output == "text" {
			fmt.Fprintf(out, "\nInitializing: %s\n", outcome(km.Initialize()))
			fmt.Fprintf(out, "Solving: %s\n\n", outcome(km.Solve(cmd.Context())))
		} else {
			if err := km.Initialize(); err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			if err := km.Solve(cmd.Context()); err != nil {
				return fmt.Errorf("solve: %w", err)
			}
		}

		if err := g.report(out, km); err != nil {
			return err
		}
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "fail (" + err.Error() + ")"
	}
	return "success"
}
