package container

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// CreateContainer creates a container under the named parent.
//
// The parent must already exist on CloudVision; a missing parent means the
// ordering contract was violated upstream, so no call is attempted. An
// already-existing container is a no-op with Success=false and
// Changed=false, which is what makes repeated runs converge. In check mode
// the creation is reported successful without contacting the API.
func (t *Tools) CreateContainer(ctx context.Context, name, parent string) *types.ActionResult {
	result := types.NewActionResult(name)

	fields := logrus.Fields{"container": name, "parent": parent}

	parentInfo := t.Info(ctx, parent)
	if parentInfo == nil {
		logrus.WithFields(fields).Debug("Parent container is missing, not creating container")

		return result
	}

	if t.Exists(ctx, name) {
		logrus.WithFields(fields).Debug("Container already exists, nothing to create")

		return result
	}

	if t.checkMode {
		logrus.WithFields(fields).Debug("Check mode, simulating container creation")

		result.Success = true
		result.Changed = true

		return result
	}

	resp, err := t.client.AddContainer(ctx, name, parentInfo.Key, parent)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to create container")

		return result
	}

	if resp.Succeeded() {
		result.Success = true
		result.Changed = true
		result.TaskIDs = resp.Data.TaskIDs
		result.Count++
	}

	logrus.WithFields(fields).WithField("success", result.Success).
		Info("Processed container creation")

	return result
}

// DeleteContainer removes an empty container.
//
// A container that does not exist, or that still holds child containers or
// devices, is a no-op with Success=false regardless of check mode; a
// non-empty container must be emptied by other means first. In check mode
// an eligible deletion is reported successful without contacting the API.
func (t *Tools) DeleteContainer(ctx context.Context, name, parent string) *types.ActionResult {
	result := types.NewActionResult(name)

	fields := logrus.Fields{"container": name, "parent": parent}

	info := t.Info(ctx, name)
	if info == nil {
		logrus.WithFields(fields).Debug("Container is missing, nothing to delete")

		return result
	}

	if !t.IsEmpty(ctx, name) {
		logrus.WithFields(fields).Debug("Container is not empty, refusing to delete")

		return result
	}

	if t.checkMode {
		// A previous container of the same run may only have been
		// removed in simulation, so the emptiness observed here can be
		// partial.
		logrus.WithFields(fields).Debug("Check mode, simulating container deletion")

		result.Success = true

		return result
	}

	resp, err := t.client.DeleteContainer(ctx, name, info.Key, info.ParentID, parent)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to delete container")

		return result
	}

	if resp.Succeeded() {
		result.Success = true
		result.Changed = true
		result.TaskIDs = resp.Data.TaskIDs
		result.Count++
	}

	logrus.WithFields(fields).WithField("success", result.Success).
		Info("Processed container deletion")

	return result
}
