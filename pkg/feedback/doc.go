// Package feedback is a form validation feedback engine.
//
// A form declares, per field, an ordered tree of rules. Each rule has a kind
// (error, warning, info or when-valid) and a matcher: a constraint flag of
// the field's validity snapshot, the wildcard, a synchronous predicate over
// the value, or an asynchronous resolver. The Engine evaluates those trees
// against snapshots supplied by the caller and keeps, per field, the latest
// results and whether a pass ran.
//
// # Rule trees
//
//	username := feedback.For("username",
//	    feedback.Error(feedback.Constraint(validity.TooShort), "Too short"),
//	    feedback.Error(feedback.Wildcard(), ""),
//	    feedback.Error(feedback.Async("available", checkAvailable), "Already taken"),
//	    feedback.WhenValid("Looks good!"),
//	)
//
// Rules are evaluated in declaration order. A wildcard matches an invalid
// snapshot unless an earlier sibling constraint rule matched; an empty
// wildcard message falls back to the snapshot's native message. When-valid
// rules are always part of the result and shown iff the snapshot is valid.
// A group stops evaluating further rules according to its StopPolicy, by
// default once an error is shown.
//
// # Passes
//
//	pass, err := engine.Validate(ctx, snapshots, "username")
//	_ = pass.Wait(ctx) // async resolutions
//	ok := engine.IsValid()
//
// Validate stores synchronous results before it returns. Async results are
// merged one by one as they resolve. Every pass, reset and removal advances
// the field's epoch, and results belonging to an older epoch are discarded.
// Changing a field's rules keeps pending results of surviving rules; those
// of removed rules are dropped when they resolve.
//
// A predicate that panics or a resolver that fails yields a
// RulePredicateError: the rule is hidden, the field is marked failed and
// reports invalid until its next pass. Other fields are not affected.
//
// # Notifications
//
// Every change is announced as an Event through Subscribe and WithOnChange
// callbacks, after the engine lock is released.
package feedback
