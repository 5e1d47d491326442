package utils

import (
	"fmt"
	"sort"
	"strings"
)

// RenderField is one key/value pair of a metadata rendering, in display order.
type RenderField struct {
	Name   string
	Value  interface{}
	Multi  bool
	Values []string
}

// RenderFields renders metadata fields as right-aligned "Name: value" lines.
// Multi-value fields are rendered as an indented bullet list; single-element
// lists collapse onto one line.
func RenderFields(fields []RenderField) string {
	maximum := 0
	for _, field := range fields {
		if len(field.Name) > maximum {
			maximum = len(field.Name)
		}
	}

	var rendered []string
	for _, field := range fields {
		if field.Multi {
			values := append([]string(nil), field.Values...)
			switch len(values) {
			case 0:
				rendered = append(rendered, fmt.Sprintf("%*s:", maximum, field.Name))
			case 1:
				rendered = append(rendered, fmt.Sprintf("%*s: %s", maximum, field.Name, values[0]))
			default:
				sort.Strings(values)
				var lines []string
				for _, value := range values {
					lines = append(lines, strings.Repeat(" ", maximum)+"   * "+value)
				}
				rendered = append(rendered, fmt.Sprintf("%*s:\n%s", maximum, field.Name, strings.Join(lines, "\n")))
			}
			continue
		}
		rendered = append(rendered, fmt.Sprintf("%*s: %v", maximum, field.Name, field.Value))
	}
	return strings.Join(rendered, "\n")
}
