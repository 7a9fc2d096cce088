// Package dom is a minimal document event model: an element tree, event
// records with cancel and propagation flags, and a document-level dispatcher
// with capture and bubble phases.
//
// The HTML adapter exposes documents parsed by golang.org/x/net/html through
// the same Element interface, so listeners can be exercised against real
// markup.
package dom
