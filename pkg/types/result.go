package types

// ActionResult records the outcome of one mutating operation against
// CloudVision. It replaces the loose per-call dictionaries of earlier
// tooling with an explicit record: constructed when the operation starts,
// populated from the API outcome, and never mutated after being returned.
type ActionResult struct {
	// Name identifies the target of the operation. For configlet
	// operations it is the container name joined with the configlet names
	// (e.g., "DC3:ALIASES:NTP").
	Name string

	// Success reports whether the operation succeeded. Precondition
	// failures (missing parent, non-empty container, already-existing
	// container) and API errors all surface here as false; errors are
	// never propagated past the operation boundary.
	Success bool

	// Changed reports whether remote state was (or, in check mode, would
	// have been) modified.
	Changed bool

	// TaskIDs lists tasks spawned by the change on CloudVision.
	TaskIDs []string

	// Count is the number of effected changes, used by callers to
	// aggregate run totals.
	Count int

	// Unresolved lists configlet names that could not be resolved on
	// CloudVision and were therefore excluded from the batch. A non-empty
	// value on a successful result means the change was applied only
	// partially.
	Unresolved []string
}

// NewActionResult constructs a result for the named target with all
// outcome fields at their zero values.
func NewActionResult(name string) *ActionResult {
	return &ActionResult{Name: name}
}

// Report defines the aggregated outcome of a topology run, consumed by the
// caller to decide overall success and whether remote state changed.
type Report interface {
	Created() []*ActionResult  // Containers created.
	Deleted() []*ActionResult  // Containers deleted.
	Attached() []*ActionResult // Configlet attach operations.
	Detached() []*ActionResult // Configlet detach operations.
	NoOp() []*ActionResult     // Operations that found nothing to do.
	Failed() []*ActionResult   // Operations that did not succeed.

	// Changed reports whether any operation modified remote state.
	Changed() bool

	// TaskIDs aggregates the task identifiers from every operation.
	TaskIDs() []string
}
