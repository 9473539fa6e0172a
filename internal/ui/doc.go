// Package ui contains the Bubble Tea program that powers the mention picker.
// The Model type focuses on message orchestration, while dedicated helpers own
// navigation, text input, rendering, and previews.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses either move the cursor, change the query, or navigate the
//     mention tree. Every change that needs new options produces a
//     backend.Request which is handed to the Querier.
//   - A single waitForQueryEvent command is kept armed while a request is
//     outstanding. When an event arrives it is offered to state.Menu.Apply,
//     which discards results for paths that are no longer current.
//
// State ownership:
//   - The committed path, query, options, cursor and marks live in
//     internal/ui/state.Menu.
//   - Resolution, debouncing and concurrency live in internal/backend; the UI
//     never blocks on a resolver.
//
// The picker completes when a leaf is chosen (Selection returns the chosen
// leaves) or is dismissed (Dismissed reports true).
package ui
