package v1handler

import (
	"linkguard/pkg/navigator"
	"linkguard/pkg/serrors"
	"net/http"
)

// Open opens the "url" query parameter through the guarded opener and
// redirects to the resulting window. A null window means the guard blocked
// the target.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := q.Get("url")
	if target == "" {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "missing url parameter"))

		return
	}

	win, err := h.deps.Opener.Open(r.Context(), navigator.Request{
		URL:      target,
		Target:   q.Get("target"),
		Features: q.Get("features"),
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	if win == nil {
		h.writeError(w, r, serrors.With(serrors.ErrForbidden, "navigation blocked"))

		return
	}

	http.Redirect(w, r, win.URL, http.StatusFound)
}
