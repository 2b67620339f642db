package ui

import (
	"densebit/dense/dfield"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

func Start(schema dfield.Schema) error {
	program := tea.NewProgram(CreateSchemaInspector(schema))
	if err := program.Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}
