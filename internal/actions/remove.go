package actions

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/container"
	"github.com/guillaumeVilar/ansible-cvp/pkg/session"
	"github.com/guillaumeVilar/ansible-cvp/pkg/topology"
	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// RemoveTopology deletes every declared container from CloudVision in
// reverse creation order, children before parents.
//
// Containers already absent are recorded as no-ops. A container that still
// holds devices cannot be deleted and surfaces as a failed operation; it
// must be emptied by other means first.
func RemoveTopology(
	ctx context.Context,
	tools *container.Tools,
	topo topology.Topology,
	params Params,
) (types.Report, error) {
	logrus.WithField("containers", len(topo)).Debug("Starting topology removal")

	ordered, err := topo.ReverseOrder(params.Root)
	if err != nil {
		logrus.WithError(err).Debug("Failed to order topology")

		return nil, fmt.Errorf("%w: %w", errOrderTopologyFailed, err)
	}

	progress := &session.Progress{}

	for _, name := range ordered {
		if !tools.Exists(ctx, name) {
			logrus.WithField("container", name).Debug("Container already absent")
			progress.AddNoOp(types.NewActionResult(name))

			continue
		}

		parent, _ := topo.Parent(name)
		progress.Add(session.KindDelete, tools.DeleteContainer(ctx, name, parent))
	}

	report := progress.Report()

	logrus.WithFields(logrus.Fields{
		"deleted": len(report.Deleted()),
		"noop":    len(report.NoOp()),
		"failed":  len(report.Failed()),
	}).Info("Completed topology removal")

	return report, nil
}
