// Package formfeedback tracks validation feedback of interactive forms.
//
// The engine lives in pkg/feedback; pkg/validity computes constraint
// snapshots, pkg/formspec reads declarative form documents and cmd/formcheck
// validates those documents from the command line. This package turns an
// engine's state into a submit decision:
//
//	if err := formfeedback.Check(engine); err != nil {
//		var verr formfeedback.ValidationError
//		if errors.As(err, &verr) {
//			msg := verr.Get("email")
//			_ = msg
//		}
//	}
package formfeedback
