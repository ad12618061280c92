// Package ui implements the interactive setlist board using bubbletea's Elm architecture.
//
// Two views:
//  1. [BoardView] : the three columns (Sæt 1, Repertoire, Sæt 2) side by side, in display order
//  2. [LibraryView] : every song newest first, with bubbles/list filtering
//
// Every key that changes the document runs one setlist transform and returns a [tea.Cmd]
// that saves the new snapshot through the store. Store I/O never blocks Update.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, space, L, m, s/t, </>, J/K, d, v, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
