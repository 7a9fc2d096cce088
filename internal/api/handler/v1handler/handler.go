// Package v1handler implements the v1 HTTP API of the link guard.
package v1handler

import (
	"context"
	"errors"
	"io"
	"linkguard/internal/guard"
	"linkguard/pkg/logger"
	"linkguard/pkg/navigator"
	"linkguard/pkg/serrors"
	"net/http"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes limits request bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 4 << 20

// Deps are the services the handlers delegate to.
type Deps struct {
	Guard  guard.Guard
	Opener navigator.Opener
}

// Options tune request handling.
type Options struct {
	MaxBodyBytes int64
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, options: opts}
}

// Register mounts the v1 routes on mux under /v1.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/check", h.CheckGet)
	mux.HandleFunc("POST /v1/check", h.CheckPost)
	mux.HandleFunc("GET /v1/open", h.Open)
	mux.HandleFunc("POST /v1/audit", h.Audit)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string
	Message string
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

// NewError maps err to a status code and response body. Internal errors are
// logged and their details hidden from the caller.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	k := serrors.KindOf(err)
	msg := serrors.MessageOf(err)

	var status int
	var fallback string
	switch k {
	case serrors.ErrBadRequest:
		status, fallback = http.StatusBadRequest, "invalid request"
	case serrors.ErrForbidden:
		status, fallback = http.StatusForbidden, "forbidden"
	case serrors.ErrNotFound:
		status, fallback = http.StatusNotFound, "resource not found"
	case serrors.ErrUnavailable:
		status, fallback = http.StatusServiceUnavailable, "service unavailable"
	default:
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response:   ErrorResponse{Code: serrors.ErrInternal.Error(), Message: "internal error"},
		}
	}

	if msg == "" {
		msg = fallback
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response:   ErrorResponse{Code: k.Error(), Message: msg},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Response.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Response.Message) })
	})
	writeJSON(r.Context(), w, res.StatusCode, &e)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// readBody reads at most MaxBodyBytes of the request body.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return body, nil
}
