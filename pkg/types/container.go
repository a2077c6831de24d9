package types

// ContainerInfo is the typed projection of a container record returned by
// the CloudVision provisioning API. Only the fields this module acts on are
// retained; everything else in the API response is dropped at the client
// boundary.
type ContainerInfo struct {
	// Key is the container identifier assigned by CloudVision
	// (e.g., "container_55effafb-2991-45ca-86e5-bf09d4739248").
	Key string `json:"key"`

	// Name is the user-visible container name.
	Name string `json:"name"`

	// ParentID is the Key of the parent container, empty for the root.
	ParentID string `json:"parentContainerId"`

	// ChildContainerCount is the number of containers nested directly
	// under this one.
	ChildContainerCount int `json:"childContainerCount"`

	// ChildNetElementCount is the number of devices attached to this
	// container.
	ChildNetElementCount int `json:"childNetElementCount"`
}

// IsEmpty reports whether the container has no child containers and no
// attached devices. Deletion is only valid for empty containers.
func (c *ContainerInfo) IsEmpty() bool {
	return c.ChildContainerCount == 0 && c.ChildNetElementCount == 0
}

// ConfigletInfo identifies a configlet on CloudVision. The provisioning API
// requires both the key and the name when attaching or detaching.
type ConfigletInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// TopologyResponse is the response envelope returned by topology-mutating
// provisioning calls (container add/delete, configlet apply/remove).
type TopologyResponse struct {
	Data TopologyData `json:"data"`
}

// TopologyData carries the outcome of a saved topology change.
type TopologyData struct {
	// Status is "success" when CloudVision accepted the change.
	Status string `json:"status"`

	// TaskIDs lists the identifiers of tasks spawned by the change, such
	// as configuration pushes to affected devices.
	TaskIDs []string `json:"taskIds"`
}

// Succeeded reports whether CloudVision accepted the topology change.
func (r *TopologyResponse) Succeeded() bool {
	return r.Data.Status == "success"
}
