// Package validity models the native constraint-validation snapshot of a
// form input: the ten ValidityState flags, the overall valid bit, the
// current value and the field name.
//
// A State is pure data. Hosts that own real widgets fill it from the widget;
// hosts without widgets (servers, tests, the formcheck CLI) compute it with
// Constraints.Check, which emulates browser constraint validation for the
// required, minlength, maxlength, pattern, type, min, max and step
// attributes.
//
// # Usage
//
//	c := validity.Constraints{Required: true, Pattern: ".{5,}"}
//	st := c.Check("password", "abc")
//	st.PatternMismatch // true
//	st.Message         // "Please match the requested format."
//
// # Sources
//
// The feedback engine never reads widgets itself. It asks a Source for a
// snapshot by field name; Snapshots is a map-backed Source and SourceFunc
// adapts a plain function.
//
// # Messages
//
// State.Message carries the native-style validation message of the first
// violated constraint. Messages come from a Catalog; DefaultCatalog holds the
// built-in English texts and LoadCatalog reads additional languages from YAML.
package validity
