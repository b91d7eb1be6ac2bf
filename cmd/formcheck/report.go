package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrymomot/formfeedback"
	"github.com/dmitrymomot/formfeedback/pkg/feedback"
)

type fieldReport struct {
	Name      string            `json:"name"`
	Value     string            `json:"value"`
	Valid     bool              `json:"valid"`
	Validated bool              `json:"validated"`
	Pending   int               `json:"pending,omitempty"`
	Feedback  []feedback.Result `json:"feedback,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type report struct {
	Document string                       `json:"document"`
	Form     string                       `json:"form,omitempty"`
	PassID   string                       `json:"pass_id,omitempty"`
	Valid    bool                         `json:"valid"`
	Fields   []fieldReport                `json:"fields,omitempty"`
	Errors   formfeedback.ValidationError `json:"errors,omitempty"`
	Error    string                       `json:"error,omitempty"`
}

func newReport(path, form, passID string, fields []feedback.FieldState) report {
	r := report{Document: path, Form: form, PassID: passID, Valid: true}
	for _, f := range fields {
		fr := fieldReport{
			Name:      f.Name,
			Value:     f.Snapshot.Value,
			Valid:     f.IsValid(),
			Validated: f.Validated,
			Pending:   f.Pending,
			Feedback:  f.Shown(),
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		r.Valid = r.Valid && fr.Valid
		r.Fields = append(r.Fields, fr)
	}
	if errs := formfeedback.FromFields(fields); !errs.IsEmpty() {
		r.Errors = errs
	}
	return r
}

func failedReport(path string, err error) report {
	return report{Document: path, Error: err.Error()}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(w io.Writer, reports []report) error {
	for _, r := range reports {
		status := "valid"
		if !r.Valid {
			status = "invalid"
		}
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", r.Document, r.Error); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%s): %s\n", r.Form, r.Document, status); err != nil {
			return err
		}
		for _, f := range r.Fields {
			if f.Error != "" {
				fmt.Fprintf(w, "  %s: failed: %s\n", f.Name, f.Error)
			}
			if f.Pending > 0 {
				fmt.Fprintf(w, "  %s: %d check(s) pending\n", f.Name, f.Pending)
			}
			for _, res := range f.Feedback {
				fmt.Fprintf(w, "  %s: %s %q\n", f.Name, res.Kind, res.Message)
			}
		}
	}
	return nil
}
