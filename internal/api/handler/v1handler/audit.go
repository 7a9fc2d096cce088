package v1handler

import (
	"bytes"
	"fmt"
	"linkguard/internal/audit"
	"net/http"

	"github.com/go-faster/jx"
)

// Audit reports the blocked anchors of the HTML document in the body.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	report, err := audit.Audit(r.Context(), bytes.NewReader(body), h.deps.Guard)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("could not audit document: %w", err))

		return
	}

	var e jx.Encoder
	EncodeReport(&e, report)
	writeJSON(r.Context(), w, http.StatusOK, &e)
}

// EncodeReport writes report as a JSON object.
func EncodeReport(e *jx.Encoder, report audit.Report) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("anchors", func(e *jx.Encoder) { e.Int(report.Anchors) })
		e.Field("blocked", func(e *jx.Encoder) { e.Int(report.Blocked) })
		e.Field("findings", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, f := range report.Findings {
					e.Obj(func(e *jx.Encoder) {
						e.Field("key", func(e *jx.Encoder) { e.Str(f.Key) })
						e.Field("decision", func(e *jx.Encoder) { EncodeDecision(e, f.Decision) })
						e.Field("hrefs", func(e *jx.Encoder) {
							e.Arr(func(e *jx.Encoder) {
								for _, href := range f.Hrefs {
									e.Str(href)
								}
							})
						})
						e.Field("occurrences", func(e *jx.Encoder) { e.Int(f.Occurrences) })
					})
				}
			})
		})
	})
}
