// Package mocks provides mock implementations for testing the topology
// manager's components.
package mocks

import (
	"context"
	"errors"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// errInjected is returned by the mock when a failure is requested.
var errInjected = errors.New("injected cloudvision failure")

// TestData holds configuration data for MockCvpClient's behavior.
// Containers and configlets are seeded by name; mutating calls update the
// container map so that idempotency checks observe their own effects.
type TestData struct {
	Containers map[string]*types.ContainerInfo // Remote containers by name.
	Configlets map[string]*types.ConfigletInfo // Remote configlets by name.
	TaskIDs    []string                        // Task IDs returned by mutating calls.

	FailLookups   bool // Make every lookup call return an error.
	FailMutations bool // Make every mutating call return an error.
	RejectChanges bool // Make mutating calls report a non-success status.
}

// MockCvpClient is a mock implementation of types.CvpClient for testing.
// It records every mutating call so tests can assert that check mode never
// touches the API.
type MockCvpClient struct {
	TestData *TestData

	// MutatingCalls lists the mutating operations issued, in order,
	// formatted as "operation:target".
	MutatingCalls []string
}

// CreateMockClient constructs a MockCvpClient around the given test data.
// Nil maps are initialized so tests can seed only what they need.
func CreateMockClient(data *TestData) *MockCvpClient {
	if data.Containers == nil {
		data.Containers = map[string]*types.ContainerInfo{}
	}

	if data.Configlets == nil {
		data.Configlets = map[string]*types.ConfigletInfo{}
	}

	return &MockCvpClient{TestData: data}
}

// SeedContainer registers a remote container with the given child counts
// and returns it, for tests that need to reference its key.
func (data *TestData) SeedContainer(name, parentKey string, childContainers, childDevices int) *types.ContainerInfo {
	info := &types.ContainerInfo{
		Key:                  "container_" + name,
		Name:                 name,
		ParentID:             parentKey,
		ChildContainerCount:  childContainers,
		ChildNetElementCount: childDevices,
	}
	data.Containers[name] = info

	return info
}

// GetContainerByName returns the seeded container for the name, nil when
// absent.
func (client *MockCvpClient) GetContainerByName(_ context.Context, name string) (*types.ContainerInfo, error) {
	if client.TestData.FailLookups {
		return nil, errInjected
	}

	return client.TestData.Containers[name], nil
}

// FilterTopology resolves a container key back to its seeded record.
func (client *MockCvpClient) FilterTopology(_ context.Context, nodeID string) (*types.ContainerInfo, error) {
	if client.TestData.FailLookups {
		return nil, errInjected
	}

	for _, info := range client.TestData.Containers {
		if info.Key == nodeID {
			return info, nil
		}
	}

	return &types.ContainerInfo{Key: nodeID}, nil
}

// GetConfigletByName returns the seeded configlet for the name, nil when
// absent.
func (client *MockCvpClient) GetConfigletByName(_ context.Context, name string) (*types.ConfigletInfo, error) {
	if client.TestData.FailLookups {
		return nil, errInjected
	}

	return client.TestData.Configlets[name], nil
}

// AddContainer records the call and registers the container, so that a
// second creation attempt observes it as existing.
func (client *MockCvpClient) AddContainer(_ context.Context, name, parentKey, _ string) (*types.TopologyResponse, error) {
	client.MutatingCalls = append(client.MutatingCalls, "AddContainer:"+name)

	if client.TestData.FailMutations {
		return nil, errInjected
	}

	if client.TestData.RejectChanges {
		return &types.TopologyResponse{Data: types.TopologyData{Status: "fail"}}, nil
	}

	client.TestData.SeedContainer(name, parentKey, 0, 0)

	if parent := client.containerByKey(parentKey); parent != nil {
		parent.ChildContainerCount++
	}

	return client.success(), nil
}

// DeleteContainer records the call and removes the container.
func (client *MockCvpClient) DeleteContainer(_ context.Context, name, _, parentKey, _ string) (*types.TopologyResponse, error) {
	client.MutatingCalls = append(client.MutatingCalls, "DeleteContainer:"+name)

	if client.TestData.FailMutations {
		return nil, errInjected
	}

	if client.TestData.RejectChanges {
		return &types.TopologyResponse{Data: types.TopologyData{Status: "fail"}}, nil
	}

	delete(client.TestData.Containers, name)

	if parent := client.containerByKey(parentKey); parent != nil {
		parent.ChildContainerCount--
	}

	return client.success(), nil
}

// ApplyConfiglets records the attach call.
func (client *MockCvpClient) ApplyConfiglets(_ context.Context, container *types.ContainerInfo, _ []types.ConfigletInfo, _ bool) (*types.TopologyResponse, error) {
	client.MutatingCalls = append(client.MutatingCalls, "ApplyConfiglets:"+container.Name)

	if client.TestData.FailMutations {
		return nil, errInjected
	}

	return client.success(), nil
}

// RemoveConfiglets records the detach call.
func (client *MockCvpClient) RemoveConfiglets(_ context.Context, container *types.ContainerInfo, _ []types.ConfigletInfo, _ bool) (*types.TopologyResponse, error) {
	client.MutatingCalls = append(client.MutatingCalls, "RemoveConfiglets:"+container.Name)

	if client.TestData.FailMutations {
		return nil, errInjected
	}

	return client.success(), nil
}

// containerByKey scans the seeded containers for a key.
func (client *MockCvpClient) containerByKey(key string) *types.ContainerInfo {
	for _, info := range client.TestData.Containers {
		if info.Key == key {
			return info
		}
	}

	return nil
}

// success builds a successful topology response carrying the configured
// task IDs.
func (client *MockCvpClient) success() *types.TopologyResponse {
	return &types.TopologyResponse{
		Data: types.TopologyData{
			Status:  "success",
			TaskIDs: client.TestData.TaskIDs,
		},
	}
}
