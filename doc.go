// Package stockboard computes what a stock board widget shows.
//
// Given quotes for a set of symbols and the user's portfolio records, it values
// every holding and projects one display row per symbol for the active view.
// The core pieces are:
//   - Store: the portfolio records, persisted as one JSON object in a Storage,
//     shared between widgets through a Cache with dirty-flag semantics.
//   - Project: a pure function turning a quote, a record and a view into a Row.
//   - NextView: the rotation through the ten views, skipping disabled ones.
//   - Ramp: panel background colors for the visual layout.
//   - Board: one refresh cycle of a widget, built on the pieces above.
//
// Quotes come from a QuoteSource, preferences live in a Storage and backups in
// Blobs; the sub packages provide implementations for them.
package stockboard
