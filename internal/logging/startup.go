// Package logging provides the startup information logging for the
// topology manager.
package logging

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guillaumeVilar/ansible-cvp/internal/flags"
)

// WriteStartupMessage logs the run configuration at startup: version,
// target instance, desired state, and whether check mode is active. It is
// suppressed by --no-startup-message.
func WriteStartupMessage(c *cobra.Command, runConfig flags.RunConfig, host, version string) {
	noStartupMessage, _ := c.PersistentFlags().GetBool("no-startup-message")
	if noStartupMessage {
		return
	}

	logrus.Info("cvcontainer ", version)
	logrus.WithFields(logrus.Fields{
		"host":     host,
		"state":    runConfig.State,
		"topology": runConfig.TopologyPath,
		"root":     runConfig.Root,
	}).Info("Applying container topology")

	if runConfig.CheckMode {
		logrus.Info("Check mode is active, no change will be sent to CloudVision")
	}

	if runConfig.SaveTopology {
		logrus.Info("Configlet changes will generate configuration push tasks")
	}
}
