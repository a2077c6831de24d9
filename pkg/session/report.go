package session

import (
	"sort"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// report implements types.Report for run results.
type report struct {
	created  []*types.ActionResult
	deleted  []*types.ActionResult
	attached []*types.ActionResult
	detached []*types.ActionResult
	noop     []*types.ActionResult
	failed   []*types.ActionResult
}

// Created returns the container creations that changed remote state.
func (r *report) Created() []*types.ActionResult { return r.created }

// Deleted returns the container deletions that changed remote state.
func (r *report) Deleted() []*types.ActionResult { return r.deleted }

// Attached returns the configlet attachments that changed remote state.
func (r *report) Attached() []*types.ActionResult { return r.attached }

// Detached returns the configlet detachments that changed remote state.
func (r *report) Detached() []*types.ActionResult { return r.detached }

// NoOp returns the operations that found nothing to do.
func (r *report) NoOp() []*types.ActionResult { return r.noop }

// Failed returns the operations that did not succeed.
func (r *report) Failed() []*types.ActionResult { return r.failed }

// Changed reports whether any operation modified remote state.
func (r *report) Changed() bool {
	for _, results := range [][]*types.ActionResult{
		r.created, r.deleted, r.attached, r.detached,
	} {
		for _, result := range results {
			if result.Changed {
				return true
			}
		}
	}

	return false
}

// TaskIDs aggregates the task identifiers spawned across the whole run,
// deduplicated and sorted for stable output.
func (r *report) TaskIDs() []string {
	seen := map[string]bool{}

	var taskIDs []string

	for _, results := range [][]*types.ActionResult{
		r.created, r.deleted, r.attached, r.detached, r.noop, r.failed,
	} {
		for _, result := range results {
			for _, taskID := range result.TaskIDs {
				if seen[taskID] {
					continue
				}

				seen[taskID] = true

				taskIDs = append(taskIDs, taskID)
			}
		}
	}

	sort.Strings(taskIDs)

	return taskIDs
}
