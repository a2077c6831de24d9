package types

import "context"

// CvpClient defines the interface for interacting with the CloudVision
// provisioning API within the topology manager.
//
// It abstracts the REST transport so that the lifecycle operations can be
// exercised against a recording mock in tests. Lookup calls return nil (not
// an error) when the named object does not exist; mutating calls return the
// decoded topology response or an error when the API rejected the change or
// the transport failed.
type CvpClient interface {
	// GetContainerByName fetches a container record by its exact name.
	//
	// Returns nil with no error if no container carries the name.
	GetContainerByName(ctx context.Context, name string) (*ContainerInfo, error)

	// FilterTopology fetches the topology node for a container key,
	// including its child container and device counts.
	FilterTopology(ctx context.Context, nodeID string) (*ContainerInfo, error)

	// AddContainer creates a container under the given parent.
	AddContainer(ctx context.Context, name, parentKey, parentName string) (*TopologyResponse, error)

	// DeleteContainer removes a container. The container key and its
	// parent key must both be supplied, mirroring the provisioning API.
	DeleteContainer(ctx context.Context, name, key, parentKey, parentName string) (*TopologyResponse, error)

	// GetConfigletByName fetches a configlet record by its exact name.
	//
	// Returns nil with no error if no configlet carries the name.
	GetConfigletByName(ctx context.Context, name string) (*ConfigletInfo, error)

	// ApplyConfiglets attaches a batch of configlets to a container.
	// When createTask is true, CloudVision generates tasks to push the
	// resulting configuration to affected devices.
	ApplyConfiglets(ctx context.Context, container *ContainerInfo, configlets []ConfigletInfo, createTask bool) (*TopologyResponse, error)

	// RemoveConfiglets detaches a batch of configlets from a container.
	RemoveConfiglets(ctx context.Context, container *ContainerInfo, configlets []ConfigletInfo, createTask bool) (*TopologyResponse, error)
}
