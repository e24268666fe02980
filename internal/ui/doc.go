// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist creation:
//  1. [InputView] : Enter a TV show title
//  2. [GenerateView] : Wait for the song list to be generated
//  3. [ReviewView] : Browse the suggested songs
//  4. [ConfirmView] : Confirm playlist creation
//  5. [FulfillView] : Monitor real-time search and creation progress
//  6. [ResultView] : Display the created playlist and match counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the CuratorEngine, providing non-blocking status reporting during fulfillment.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
