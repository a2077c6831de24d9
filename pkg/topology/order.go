package topology

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrDanglingParent indicates a container declares a parent that is neither
// the root sentinel nor another container of the topology, so it can never
// be placed in a build order.
var ErrDanglingParent = errors.New("container declares unresolvable parent")

// Order linearizes the topology into a creation sequence rooted at the
// given sentinel: every container appears strictly after its parent.
//
// The algorithm scans the remaining containers in lexical name order and
// places any container whose parent is the sentinel or has already been
// placed. Placements made earlier in a pass are visible to later checks in
// the same pass, so a whole branch can be placed in one scan. A well-formed
// forest of N containers needs at most N passes; a full pass that places
// nothing means some container's parent is unresolvable, which is reported
// as ErrDanglingParent instead of scanning forever.
//
// Order is a pure function over the topology; an empty topology yields an
// empty sequence.
func (t Topology) Order(root string) ([]string, error) {
	names := t.sortedNames()
	ordered := make([]string, 0, len(t))
	placed := make(map[string]bool, len(t))

	logrus.WithFields(logrus.Fields{
		"containers": len(t),
		"root":       root,
	}).Debug("Building container creation order")

	for pass := 0; len(ordered) < len(t) && pass < len(t); pass++ {
		progress := false

		for _, name := range names {
			if placed[name] {
				continue
			}

			parent := t[name].ParentContainer
			if parent == root || placed[parent] {
				ordered = append(ordered, name)
				placed[name] = true
				progress = true
			}
		}

		if !progress {
			break
		}
	}

	if len(ordered) < len(t) {
		name, parent := t.firstUnplaced(names, placed)

		return nil, fmt.Errorf(
			"%w: container %q declares parent %q",
			ErrDanglingParent, name, parent,
		)
	}

	logrus.WithField("order", ordered).Debug("Resolved container creation order")

	return ordered, nil
}

// ReverseOrder returns the creation order reversed, children strictly
// before parents, which is the only safe deletion sequence.
func (t Topology) ReverseOrder(root string) ([]string, error) {
	ordered, err := t.Order(root)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}

	return ordered, nil
}

// firstUnplaced returns the first container (in lexical order) that could
// not be placed, together with its declared parent, for error reporting.
func (t Topology) firstUnplaced(names []string, placed map[string]bool) (string, string) {
	for _, name := range names {
		if !placed[name] {
			return name, t[name].ParentContainer
		}
	}

	return "", ""
}
