package topology

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors for topology file loading.
var (
	// errReadTopologyFailed indicates the topology file could not be read.
	errReadTopologyFailed = errors.New("failed to read topology file")
	// errParseTopologyFailed indicates the topology document is not valid YAML.
	errParseTopologyFailed = errors.New("failed to parse topology document")
	// errEmptyContainerName indicates a topology key is an empty string.
	errEmptyContainerName = errors.New("topology contains an empty container name")
)

// Load reads and parses a topology document from a YAML file.
func Load(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errReadTopologyFailed, err)
	}

	return Parse(data)
}

// Parse decodes a topology document.
//
// The document is a mapping from container name to spec:
//
//	DC2:
//	  parent_container: Tenant
//	DC2_LEAFS:
//	  parent_container: DC2
//	  configlets:
//	    - GLOBAL-ALIASES
//
// An empty document yields an empty topology. Unresolvable parents are not
// rejected here; they surface as an ordering error when the topology is
// applied.
func Parse(data []byte) (Topology, error) {
	topo := Topology{}
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("%w: %w", errParseTopologyFailed, err)
	}

	for name := range topo {
		if name == "" {
			return nil, errEmptyContainerName
		}
	}

	return topo, nil
}
