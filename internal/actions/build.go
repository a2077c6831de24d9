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

// BuildTopology creates every declared container on CloudVision, parents
// before children, and attaches declared configlets along the way.
//
// Containers that already exist are recorded as no-ops, keeping repeated
// runs convergent; their configlet attachments are still processed so that
// configlet drift is corrected. The only hard error is an unorderable
// topology (dangling parent reference); everything else is absorbed into
// the report.
func BuildTopology(
	ctx context.Context,
	tools *container.Tools,
	topo topology.Topology,
	params Params,
) (types.Report, error) {
	logrus.WithField("containers", len(topo)).Debug("Starting topology build")

	ordered, err := topo.Order(params.Root)
	if err != nil {
		logrus.WithError(err).Debug("Failed to order topology")

		return nil, fmt.Errorf("%w: %w", errOrderTopologyFailed, err)
	}

	progress := &session.Progress{}

	for _, name := range ordered {
		parent, _ := topo.Parent(name)

		if tools.Exists(ctx, name) {
			logrus.WithField("container", name).Debug("Container already present")
			progress.AddNoOp(types.NewActionResult(name))
		} else {
			progress.Add(session.KindCreate, tools.CreateContainer(ctx, name, parent))
		}

		if topo.HasConfiglets(name) {
			result := tools.AttachConfiglets(ctx, name, topo.Configlets(name), params.Strict)
			progress.Add(session.KindAttach, result)
		}
	}

	report := progress.Report()

	logrus.WithFields(logrus.Fields{
		"created":  len(report.Created()),
		"attached": len(report.Attached()),
		"noop":     len(report.NoOp()),
		"failed":   len(report.Failed()),
	}).Info("Completed topology build")

	return report, nil
}
