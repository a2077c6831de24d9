// Package actions provides the orchestration logic that drives a declared
// container topology to CloudVision: building the tree in parent-first
// order and removing it in child-first order.
package actions

import (
	"errors"
)

// errOrderTopologyFailed indicates the declared topology could not be
// linearized into a valid build order.
var errOrderTopologyFailed = errors.New("failed to order container topology")

// Params defines options for topology runs.
type Params struct {
	// Root is the sentinel naming the top of the container tree,
	// topology.DefaultRoot unless overridden.
	Root string

	// Strict requests removal of configlets not declared in the
	// topology. Accepted for interface compatibility; not supported.
	Strict bool
}
