// Package session aggregates the per-operation results of one topology run
// into the report consumed by the caller.
package session

import (
	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// Kind names the operation that produced a result.
type Kind int

// Operation kinds.
const (
	KindCreate Kind = iota // Container creation.
	KindDelete             // Container deletion.
	KindAttach             // Configlet attachment.
	KindDetach             // Configlet detachment.
)

// Progress collects operation results during a run. The zero value is
// ready to use.
type Progress struct {
	created  []*types.ActionResult
	deleted  []*types.ActionResult
	attached []*types.ActionResult
	detached []*types.ActionResult
	noop     []*types.ActionResult
	failed   []*types.ActionResult
}

// Add files an operation result under its outcome: failed when the
// operation did not succeed, no-op when it succeeded without changing
// anything, otherwise under the operation's kind.
func (p *Progress) Add(kind Kind, result *types.ActionResult) {
	fields := logrus.Fields{
		"name":    result.Name,
		"success": result.Success,
		"changed": result.Changed,
	}

	switch {
	case !result.Success:
		p.failed = append(p.failed, result)
		logrus.WithFields(fields).Debug("Recorded operation as failed")
	case !result.Changed:
		p.noop = append(p.noop, result)
		logrus.WithFields(fields).Debug("Recorded operation as no-op")
	default:
		switch kind {
		case KindCreate:
			p.created = append(p.created, result)
		case KindDelete:
			p.deleted = append(p.deleted, result)
		case KindAttach:
			p.attached = append(p.attached, result)
		case KindDetach:
			p.detached = append(p.detached, result)
		}

		logrus.WithFields(fields).Debug("Recorded operation as changed")
	}
}

// AddNoOp files a result for a target that required no operation at all,
// such as a container that already exists with the desired parent.
func (p *Progress) AddNoOp(result *types.ActionResult) {
	p.noop = append(p.noop, result)
	logrus.WithField("name", result.Name).Debug("Recorded target as no-op")
}

// Report freezes the collected results into the run report.
func (p *Progress) Report() types.Report {
	return &report{
		created:  p.created,
		deleted:  p.deleted,
		attached: p.attached,
		detached: p.detached,
		noop:     p.noop,
		failed:   p.failed,
	}
}
