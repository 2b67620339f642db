package ui

import (
	"fmt"
	"strings"

	"densebit/dense/dfield"
	"densebit/dense/dsize"
	"densebit/ds"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

type (
	SchemaInspector struct {
		schema dfield.Schema
		cursor int
		ranges []dsize.Range
	}
)

func CreateSchemaInspector(schema dfield.Schema) SchemaInspector {
	ranges := lo.Map(
		schema,
		func(field dfield.Field, _ int) dsize.Range {
			fieldRange, err := dsize.StaticRange(field, schema)
			if err != nil {
				return dsize.Range{}
			}
			return fieldRange
		},
	)
	return SchemaInspector{
		schema: schema,
		cursor: 0,
		ranges: ranges,
	}
}

func (s SchemaInspector) Init() tea.Cmd {
	return nil
}

func (s SchemaInspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.schema)-1 {
			s.cursor++
		}
	case "q", "esc", "ctrl+c":
		return s, tea.Quit
	}
	return s, nil
}

func describeRange(fieldRange dsize.Range) string {
	if !fieldRange.Bounded {
		return fmt.Sprintf("%d..unbounded bits", fieldRange.MinBits)
	}
	if fieldRange.MinBits == fieldRange.MaxBits {
		return fmt.Sprintf("%d bits", fieldRange.MinBits)
	}
	return fmt.Sprintf("%d..%d bits", fieldRange.MinBits, fieldRange.MaxBits)
}

func (s SchemaInspector) View() string {
	builder := strings.Builder{}
	builder.WriteString("DENSEBIT SCHEMA INSPECTOR\n\n")
	for i, field := range s.schema {
		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		fmt.Fprintf(
			&builder,
			"%s%-20s %-12s %s\n",
			marker, field.Name, field.Kind, describeRange(s.ranges[i]),
		)
	}
	if len(s.schema) > 0 {
		fmt.Fprintf(&builder, "\n%s\n", ds.DumpJSON(s.schema[s.cursor]))
	}
	builder.WriteString("\nup/down to move, q to quit\n")
	return builder.String()
}
