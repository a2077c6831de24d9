package container

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// AttachConfiglets attaches a batch of configlets to a container.
//
// Each name is resolved to its CloudVision record first; names that do not
// resolve are excluded from the batch and surfaced on the result's
// Unresolved field. The remaining batch goes out as a single apply call,
// and a fully unresolved batch still reports the success of an empty
// attach. The strict flag (remove configlets not in the list) is accepted
// but performs no removal.
func (t *Tools) AttachConfiglets(ctx context.Context, container string, configlets []string, strict bool) *types.ActionResult {
	return t.processConfiglets(ctx, container, configlets, strict, true)
}

// DetachConfiglets detaches a batch of configlets from a container,
// mirroring AttachConfiglets with the remove call.
func (t *Tools) DetachConfiglets(ctx context.Context, container string, configlets []string, strict bool) *types.ActionResult {
	return t.processConfiglets(ctx, container, configlets, strict, false)
}

// processConfiglets resolves a configlet name batch and issues the apply
// or remove call for it.
func (t *Tools) processConfiglets(ctx context.Context, container string, configlets []string, strict, attach bool) *types.ActionResult {
	result := types.NewActionResult(container)

	verb := "detach"
	if attach {
		verb = "attach"
	}

	fields := logrus.Fields{"container": container, "configlets": configlets}

	if strict {
		logrus.WithFields(fields).
			Warn("Strict mode is not supported, configlets outside the list are left attached")
	}

	info := t.Info(ctx, container)

	batch, unresolved, err := t.resolveConfiglets(ctx, configlets)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to resolve configlet batch")

		return result
	}

	result.Name = resultName(container, batch)
	result.Unresolved = unresolved

	if len(unresolved) > 0 {
		logrus.WithFields(fields).WithField("unresolved", unresolved).
			Warn("Some configlets do not exist on CloudVision and were dropped from the batch")
	}

	// A missing container can be legitimate in check mode when its
	// creation was only simulated earlier in the run.
	if info == nil {
		logrus.WithFields(fields).Debug("Container is missing, not touching configlets")

		return result
	}

	if t.checkMode {
		logrus.WithFields(fields).Debugf("Check mode, simulating configlet %s", verb)

		result.Success = true
		result.TaskIDs = []string{"check_mode"}

		return result
	}

	var resp *types.TopologyResponse
	if attach {
		resp, err = t.client.ApplyConfiglets(ctx, info, batch, t.saveTopology)
	} else {
		resp, err = t.client.RemoveConfiglets(ctx, info, batch, t.saveTopology)
	}

	if err != nil {
		logrus.WithError(err).WithFields(fields).Errorf("Failed to %s configlets", verb)

		return result
	}

	if resp.Succeeded() {
		result.Success = true
		result.TaskIDs = resp.Data.TaskIDs
		result.Changed = len(batch) > 0
		result.Count = len(batch)
	}

	return result
}

// resolveConfiglets looks up each configlet name on CloudVision, splitting
// the input into the resolvable batch and the names that do not exist.
func (t *Tools) resolveConfiglets(ctx context.Context, names []string) ([]types.ConfigletInfo, []string, error) {
	batch := make([]types.ConfigletInfo, 0, len(names))

	var unresolved []string

	for _, name := range names {
		info, err := t.client.GetConfigletByName(ctx, name)
		if err != nil {
			return nil, nil, err
		}

		if info == nil {
			unresolved = append(unresolved, name)

			continue
		}

		batch = append(batch, *info)
	}

	return batch, unresolved, nil
}

// resultName joins the container name with the resolved configlet names,
// e.g. "DC3:ALIASES:NTP".
func resultName(container string, batch []types.ConfigletInfo) string {
	names := make([]string, 0, len(batch)+1)
	names = append(names, container)

	for _, configlet := range batch {
		names = append(names, configlet.Name)
	}

	return strings.Join(names, ":")
}
