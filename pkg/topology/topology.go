// Package topology models the user-declared container tree and linearizes
// it into a valid build order, parents strictly before children.
package topology

import "sort"

// DefaultRoot is the reserved sentinel naming the top of the CloudVision
// container tree. A container whose parent is the sentinel sits directly
// under the root and can always be placed first.
const DefaultRoot = "Tenant"

// ContainerSpec declares a single container in the user topology.
type ContainerSpec struct {
	// ParentContainer names the parent, either another key of the
	// topology or the root sentinel.
	ParentContainer string `yaml:"parent_container"`

	// Configlets optionally lists configlet names to attach to the
	// container, in attachment order.
	Configlets []string `yaml:"configlets"`
}

// Topology maps container names to their declared specs. A well-formed
// topology is a forest rooted at the sentinel: every parent value is either
// the sentinel or another key of the map, and no cycles exist.
type Topology map[string]ContainerSpec

// Parent returns the declared parent of the named container, or false if
// the container is not part of the topology.
func (t Topology) Parent(name string) (string, bool) {
	spec, ok := t[name]
	if !ok {
		return "", false
	}

	return spec.ParentContainer, true
}

// Configlets returns the configlets declared for the named container. The
// result is nil when the container is absent or declares no configlet
// field; a declared-but-empty list is returned as an empty slice.
func (t Topology) Configlets(name string) []string {
	spec, ok := t[name]
	if !ok {
		return nil
	}

	return spec.Configlets
}

// HasConfiglets reports whether the named container declares a configlet
// list, even an empty one.
func (t Topology) HasConfiglets(name string) bool {
	spec, ok := t[name]
	if !ok {
		return false
	}

	return spec.Configlets != nil
}

// sortedNames returns the container names in lexical order, giving the
// ordering scan a stable tie-break independent of map iteration order.
func (t Topology) sortedNames() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
