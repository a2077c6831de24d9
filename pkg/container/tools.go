// Package container implements the idempotent lifecycle operations of the
// topology manager: container creation and deletion, and configlet
// attachment, each guarded by existence and emptiness checks so repeated
// runs converge without duplicate side effects.
//
// Every operation returns a types.ActionResult and never an error: API
// failures are logged and downgraded to Success=false at this boundary,
// so nothing above it ever receives a raised error from CloudVision.
package container

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// Tools executes container lifecycle operations against one CloudVision
// client. In check mode every mutating call is simulated and reported
// successful without contacting the API.
type Tools struct {
	client       types.CvpClient
	checkMode    bool
	saveTopology bool
}

// NewTools binds lifecycle operations to a CloudVision client.
//
// Parameters:
//   - client: CloudVision API client, real or mock.
//   - checkMode: Simulate mutating calls without issuing them.
//   - saveTopology: Generate configuration push tasks on configlet changes.
func NewTools(client types.CvpClient, checkMode, saveTopology bool) *Tools {
	return &Tools{
		client:       client,
		checkMode:    checkMode,
		saveTopology: saveTopology,
	}
}

// Info fetches the typed container record for a name, nil when the
// container does not exist or the lookup failed.
func (t *Tools) Info(ctx context.Context, name string) *types.ContainerInfo {
	info, err := t.client.GetContainerByName(ctx, name)
	if err != nil {
		logrus.WithError(err).WithField("container", name).
			Error("Failed to get container information")

		return nil
	}

	return info
}

// Exists reports whether a container with the given name exists on
// CloudVision. Lookup failures count as non-existence.
func (t *Tools) Exists(ctx context.Context, name string) bool {
	return t.Info(ctx, name) != nil
}

// IsEmpty reports whether the container has no child containers and no
// attached devices. Only empty containers may be deleted.
func (t *Tools) IsEmpty(ctx context.Context, name string) bool {
	info := t.Info(ctx, name)
	if info == nil {
		return false
	}

	node, err := t.client.FilterTopology(ctx, info.Key)
	if err != nil {
		logrus.WithError(err).WithField("container", name).
			Error("Failed to get container topology node")

		return false
	}

	return node.IsEmpty()
}

// ID returns the CloudVision key of the named container, empty when the
// container does not exist.
func (t *Tools) ID(ctx context.Context, name string) string {
	info := t.Info(ctx, name)
	if info == nil {
		return ""
	}

	return info.Key
}
