package scope

import "github.com/Piotr1215/beam/internal/textobj"

// renderInstances formats every instance into panel lines and builds the
// line-to-instance index. Multi-line instances occupy several panel lines,
// all mapping back to the same instance. Display ranges are written back
// onto the instances.
func renderInstances(kind textobj.Kind, instances []textobj.Instance) ([]string, map[int]int) {
	var lines []string
	index := make(map[int]int)
	for i := range instances {
		rendered := kind.Format(instances[i])
		if len(rendered) == 0 {
			rendered = []string{instances[i].FirstLinePreview()}
		}
		instances[i].DisplayStart = len(lines) + 1
		for _, line := range rendered {
			lines = append(lines, line)
			index[len(lines)] = i
		}
		instances[i].DisplayEnd = len(lines)
	}
	return lines, index
}

// panelWidth chooses the panel width:
// min(maxWidth, max(minWidth, longest+padding)).
func panelWidth(cfg Config, lines []string) int {
	longest := 0
	for _, line := range lines {
		if len(line) > longest {
			longest = len(line)
		}
	}
	width := longest + cfg.Padding
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	return width
}

// initialInstance picks where the panel cursor starts: the instance whose
// start line is the smallest value at or past the source cursor line;
// failing that, the closest instance above it. Ties go to the smallest
// absolute line distance. Returns -1 for an empty list.
func initialInstance(instances []textobj.Instance, cursorLine int) int {
	best := -1
	for i, inst := range instances {
		if inst.Start.Line < cursorLine {
			continue
		}
		if best < 0 || inst.Start.Line < instances[best].Start.Line {
			best = i
		}
	}
	if best >= 0 {
		return best
	}
	for i, inst := range instances {
		if best < 0 {
			best = i
			continue
		}
		cur := instances[best]
		di := cursorLine - inst.Start.Line
		db := cursorLine - cur.Start.Line
		if di < db || (di == db && inst.Start.Line > cur.Start.Line) {
			best = i
		}
	}
	return best
}
