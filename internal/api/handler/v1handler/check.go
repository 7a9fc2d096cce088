package v1handler

import (
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"net/http"

	"github.com/go-faster/jx"
)

// MaxCheckURLs bounds the number of candidates evaluated per request.
const MaxCheckURLs = 1000

// CheckGet evaluates every "url" query parameter.
func (h *Handler) CheckGet(w http.ResponseWriter, r *http.Request) {
	urls, ok := r.URL.Query()["url"]
	if !ok {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "missing url parameter"))

		return
	}

	h.check(w, r, urls)
}

// CheckPost evaluates the candidates of a {"urls": [...]} body.
func (h *Handler) CheckPost(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	urls, err := DecodeCheckRequest(body)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.check(w, r, urls)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request, urls []string) {
	if len(urls) == 0 {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "no urls given"))

		return
	}
	if len(urls) > MaxCheckURLs {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "at most %d urls per request", MaxCheckURLs))

		return
	}

	decisions := make([]domain.Decision, 0, len(urls))
	for _, u := range urls {
		decisions = append(decisions, h.deps.Guard.Evaluate(r.Context(), u))
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("decisions", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, d := range decisions {
					EncodeDecision(e, d)
				}
			})
		})
	})
	writeJSON(r.Context(), w, http.StatusOK, &e)
}

// DecodeCheckRequest reads {"urls": ["...", ...]}. Unknown fields are
// ignored.
func DecodeCheckRequest(body []byte) ([]string, error) {
	var urls []string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "urls" {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			s, err := d.Str()
			if err != nil {
				return err
			}
			urls = append(urls, s)

			return nil
		})
	}); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid check request")
	}

	return urls, nil
}

// EncodeDecision writes d as a JSON object.
func EncodeDecision(e *jx.Encoder, d domain.Decision) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("candidate", func(e *jx.Encoder) { e.Str(d.Candidate) })
		if d.URL != "" {
			e.Field("url", func(e *jx.Encoder) { e.Str(d.URL) })
		}
		if d.Host != "" {
			e.Field("host", func(e *jx.Encoder) { e.Str(d.Host) })
		}
		e.Field("blocked", func(e *jx.Encoder) { e.Bool(d.Blocked) })
		e.Field("rule", func(e *jx.Encoder) { e.Str(string(d.Rule)) })
	})
}
