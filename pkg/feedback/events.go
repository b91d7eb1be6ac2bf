package feedback

// EventKind identifies what changed the registry.
type EventKind uint8

const (
	// EventValidated follows the synchronous part of a pass.
	EventValidated EventKind = iota + 1
	// EventAsyncResolved follows each async result merged into a field.
	EventAsyncResolved
	// EventReset follows ResetFields.
	EventReset
	// EventDeregistered follows the removal of fields by Deregister or
	// Reconcile.
	EventDeregistered
	// EventUpdated follows Register, and Update or Reconcile calls that
	// added fields or changed their rules.
	EventUpdated
)

func (k EventKind) String() string {
	switch k {
	case EventValidated:
		return "validated"
	case EventAsyncResolved:
		return "async_resolved"
	case EventReset:
		return "reset"
	case EventDeregistered:
		return "deregistered"
	case EventUpdated:
		return "updated"
	}
	return "unknown"
}

// Event tells collaborators that the registry changed.
type Event struct {
	Kind   EventKind
	PassID string
	Fields []string
	// Valid is the aggregate validity of every registered field right after
	// the change.
	Valid bool
}
