// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, bar charts, lists,
//   canvas splicing, popup overlay)
//
// Not allowed here:
// - key handling, app state transitions, or dashboard policy
package widgets
