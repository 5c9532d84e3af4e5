package view

import "errors"

var (
	ErrNoTemplates = errors.New("view: no templates matched")
	ErrRender      = errors.New("view: render failed")
	ErrNotFound    = errors.New("view: template not found")
)
