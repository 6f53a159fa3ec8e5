package domain

import "errors"

var (
	ErrEmptyScript       = errors.New("script is empty")
	ErrNoScenes          = errors.New("no scenes found")
	ErrRunInProgress     = errors.New("a production run is already in progress")
	ErrSceneNotFound     = errors.New("scene not found")
	ErrNoCompletedScenes = errors.New("no completed scenes to export")
	ErrNotFound          = errors.New("not found")
)
