package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel string
	output   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "kmeans",
		Short:         "Partition data points into k clusters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "text", "output format (text, json, go-json, yaml)")

	root.AddCommand(
		newSolveCmd(g),
		newDemoCmd(g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "kmeans", version)
		},
	}
}

// logger builds a text logger on the command's error stream.
func (g *globalFlags) logger(cmd *cobra.Command) (*kmeans.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	return kmeans.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})), nil
}

// checkOutput fails early on an unknown --output value.
func (g *globalFlags) checkOutput() error {
	if g.output == "text" {
		return nil
	}
	if _, ok := codec.ByName(g.output); !ok {
		return fmt.Errorf("invalid --output %q", g.output)
	}
	return nil
}

// report writes the outcome of a run in the selected format.
func (g *globalFlags) report(w io.Writer, km *kmeans.KMeans) error {
	if g.output != "text" {
		c, ok := codec.ByName(g.output)
		if !ok {
			return fmt.Errorf("invalid --output %q", g.output)
		}
		data, err := c.Marshal(km.Result())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var sb strings.Builder
	sb.WriteString(km.String())

	clusters := km.Clusters()
	for _, c := range clusters {
		sb.WriteString(c.String())
	}

	biggest := -1
	for i, c := range clusters {
		if biggest < 0 || c.Len() > clusters[biggest].Len() {
			biggest = i
		}
	}
	if biggest >= 0 {
		fmt.Fprintf(&sb, "\nBiggest cluster = %s\n", clusters[biggest].Name())
		for _, p := range clusters[biggest].Points() {
			sb.WriteString(p.String())
		}
	}

	for _, r := range km.Rejected() {
		fmt.Fprintf(&sb, "rejected: %v\n", r)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
