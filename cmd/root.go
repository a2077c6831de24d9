// Package cmd contains the command-line interface definitions and
// execution logic for the topology manager. It wires flag parsing, logging
// setup, CloudVision client construction, and the build/remove runs, and
// turns the resulting report into log output and an exit code.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guillaumeVilar/ansible-cvp/internal/actions"
	"github.com/guillaumeVilar/ansible-cvp/internal/flags"
	"github.com/guillaumeVilar/ansible-cvp/internal/logging"
	"github.com/guillaumeVilar/ansible-cvp/internal/meta"
	"github.com/guillaumeVilar/ansible-cvp/pkg/container"
	"github.com/guillaumeVilar/ansible-cvp/pkg/cvp"
	"github.com/guillaumeVilar/ansible-cvp/pkg/topology"
	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// errRunFailed indicates at least one operation of the run did not
// succeed.
var errRunFailed = errors.New("topology run finished with failed operations")

// client talks to the CloudVision instance targeted by the run. It is
// constructed during preRun from the connection flags and reused across
// every call of the run.
var client *cvp.Client

// cvpConfig holds the connection settings read during preRun.
var cvpConfig cvp.Config

// runConfig holds the per-run options read during preRun.
var runConfig flags.RunConfig

// rootCmd is the root command for the topology manager CLI.
var rootCmd = NewRootCommand()

// NewRootCommand creates the root command with its run functions.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cvcontainer",
		Short: "cvcontainer applies a declarative container topology to CloudVision",
		Long: `cvcontainer reads a declarative container topology (a yaml mapping of
container name to parent container and configlets) and converges the
container tree of an Arista CloudVision instance towards it, creating or
deleting containers and attaching configlets as needed. Repeated runs are
idempotent, and check mode simulates every change without contacting the
instance.`,
		PreRunE:       preRun,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// init registers the flags on the root command.
func init() {
	flags.SetDefaults()
	flags.RegisterCvpFlags(rootCmd)
	flags.RegisterSystemFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Run failed")
		os.Exit(1)
	}
}

// preRun configures logging, reads the flag values, and constructs the
// CloudVision client.
func preRun(cmd *cobra.Command, _ []string) error {
	flagSet := cmd.PersistentFlags()

	if err := flags.SetupLogging(flagSet); err != nil {
		return err
	}

	var err error

	cvpConfig, err = flags.ReadCvpConfig(flagSet)
	if err != nil {
		return err
	}

	runConfig, err = flags.ReadRunConfig(flagSet)
	if err != nil {
		return err
	}

	client, err = cvp.NewClient(cvpConfig)
	if err != nil {
		return err
	}

	return nil
}

// run loads the topology, authenticates, dispatches the build or removal,
// and reports the outcome.
func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	topo, err := topology.Load(runConfig.TopologyPath)
	if err != nil {
		return err
	}

	logging.WriteStartupMessage(cmd, runConfig, cvpConfig.Host, meta.Version)

	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	tools := container.NewTools(client, runConfig.CheckMode, runConfig.SaveTopology)
	params := actions.Params{Root: runConfig.Root, Strict: runConfig.Strict}

	var report types.Report

	if runConfig.State == flags.StateAbsent {
		report, err = actions.RemoveTopology(ctx, tools, topo, params)
	} else {
		report, err = actions.BuildTopology(ctx, tools, topo, params)
	}

	if err != nil {
		return err
	}

	return writeSummary(report)
}

// writeSummary logs the run report and converts failed operations into a
// non-zero exit.
func writeSummary(report types.Report) error {
	for _, result := range report.Failed() {
		logrus.WithField("name", result.Name).Warn("Operation did not succeed")
	}

	for _, result := range append(report.Attached(), report.Detached()...) {
		if len(result.Unresolved) > 0 {
			logrus.WithFields(logrus.Fields{
				"name":       result.Name,
				"unresolved": result.Unresolved,
			}).Warn("Configlets were dropped from the batch")
		}
	}

	logrus.WithFields(logrus.Fields{
		"created":  len(report.Created()),
		"deleted":  len(report.Deleted()),
		"attached": len(report.Attached()),
		"detached": len(report.Detached()),
		"noop":     len(report.NoOp()),
		"failed":   len(report.Failed()),
		"changed":  report.Changed(),
		"tasks":    report.TaskIDs(),
	}).Info("Topology run summary")

	if failed := len(report.Failed()); failed > 0 {
		return fmt.Errorf("%w: %d operation(s)", errRunFailed, failed)
	}

	return nil
}
