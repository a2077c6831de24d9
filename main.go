package main

import (
	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/cmd"
)

// init configures the initial logging level.
//
// It sets logrus to InfoLevel by default, ensuring basic operational logs
// are visible unless overridden by flags like --debug or --log-level in cmd.
func init() {
	logrus.SetLevel(logrus.InfoLevel)
}

// main serves as the entry point for the topology manager.
//
// It delegates execution to the cmd package, which handles CLI setup, flag
// parsing, and the topology build or removal run.
func main() {
	cmd.Execute()
}
