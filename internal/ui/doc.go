// Package ui implements Facet's terminal interface on Bubble Tea.
//
// The UI is a pure observer of the controller: it subscribes to snapshots,
// forwards them into the program's message loop, and renders whatever the
// latest snapshot says. Nothing in this package holds authoritative state
// about the profile; pressing a key invokes a controller operation and the
// resulting snapshot drives the next frame.
//
// The one piece of state the UI does own is the edit draft. While the edit
// overlay is open the text inputs hold uncommitted values the controller
// never sees; submitting hands over a patch of only the changed fields, and
// cancelling discards the draft entirely on this side of the boundary.
//
// Modes: a profile card view, the edit overlay, and a user-switcher prompt.
// The controller decides when edit mode ends (a settled submit or a rebind
// clears the editing flag), so the overlay closes on the snapshot that
// reports it, not on the keypress.
package ui
