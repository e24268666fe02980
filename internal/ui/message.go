package ui

import (
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/tasks"
)

// generationDoneMsg carries the generated song list or the error that stopped it.
type generationDoneMsg struct {
	result *models.PlaylistResult
	err    error
}

// progressUpdateMsg wraps a [tasks.ProgressUpdate] received from the engine.
type progressUpdateMsg tasks.ProgressUpdate

// fulfillmentDoneMsg carries the created playlist summary or the error that stopped it.
type fulfillmentDoneMsg struct {
	summary *models.FulfillmentSummary
	err     error
}
