package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"
)

// divisionNames maps each harmonic to its traditional name.
var divisionNames = map[int]string{
	1:  "Rashi",
	2:  "Hora",
	3:  "Drekkana",
	4:  "Chaturthamsha",
	7:  "Saptamsha",
	9:  "Navamsha",
	10: "Dashamsha",
	12: "Dwadashamsha",
	16: "Shodashamsha",
	20: "Vimshamsha",
	24: "Chaturvimshamsha",
	27: "Bhamsha",
	30: "Trimshamsha",
	40: "Khavedamsha",
	45: "Akshavedamsha",
	60: "Shashtiamsha",
}

// divisionName returns "Navamsha (D9)" style labels.
func divisionName(d int) string {
	if name, ok := divisionNames[d]; ok {
		return fmt.Sprintf("%s (D%d)", name, d)
	}
	return fmt.Sprintf("D%d", d)
}

// formatDegree renders an in-sign degree as degrees and arc minutes,
// e.g. 12.5 → "12°30′".
func formatDegree(deg float64) string {
	whole := math.Floor(deg)
	minutes := math.Round((deg - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%.0f°%02.f′", whole, minutes)
}

// chartRows lists the chart entries in display order: ascendant first, then
// the bodies in traditional order.
func chartRows(chart *varga.Chart) [][]string {
	withHouses := !chart.SignOnly()

	row := func(name string, p varga.Projected) []string {
		cells := []string{name, p.Sign.String(), formatDegree(p.Degree)}
		if withHouses {
			cells = append(cells, fmt.Sprintf("%d", p.House))
		}
		return cells
	}

	rows := [][]string{row("Ascendant", chart.Ascendant)}
	for _, b := range graha.All() {
		if p, ok := chart.Body(b); ok {
			rows = append(rows, row(b.Display(), p))
		}
	}
	return rows
}

// renderChart renders one divisional chart as a terminal table.
func renderChart(chart *varga.Chart) string {
	headers := []string{"Body", "Sign", "Degree"}
	if !chart.SignOnly() {
		headers = append(headers, "House")
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(chartRows(chart)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == 0 {
				// The ascendant row anchors the chart.
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			if col == 0 {
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	title := StyleTitle.Render(divisionName(chart.Division))
	note := ""
	if chart.SignOnly() {
		note = "\n" + StyleDim.Render("  sign-only harmonic; houses not defined")
	}
	return title + "\n" + t.Render() + note
}

// vargottamaRows lists the statuses in traditional body order. The status
// slice is parallel to the rows so styling is keyed to each row's own
// status, even when some bodies are missing from the map.
func vargottamaRows(statuses map[graha.Body]varga.VargottamaStatus) ([][]string, []varga.VargottamaStatus) {
	rows := make([][]string, 0, len(statuses))
	rowStatus := make([]varga.VargottamaStatus, 0, len(statuses))
	for _, b := range graha.All() {
		status, ok := statuses[b]
		if !ok {
			continue
		}
		rows = append(rows, []string{b.Display(), status.String()})
		rowStatus = append(rowStatus, status)
	}
	return rows, rowStatus
}

// renderVargottama renders per-body vargottama statuses as a table.
func renderVargottama(statuses map[graha.Body]varga.VargottamaStatus) string {
	rows, rowStatus := vargottamaRows(statuses)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Body", "Vargottama").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			if row < 0 || row >= len(rowStatus) {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			switch rowStatus[row] {
			case varga.VargottamaYes:
				return StyleSuccess
			case varga.VargottamaInapplicable:
				return StyleDim
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})

	return StyleTitle.Render("Vargottama (D1 vs D9)") + "\n" + t.Render()
}

// renderDivisions renders the supported harmonics as a table.
func renderDivisions() string {
	rows := [][]string{}
	for _, d := range varga.Divisions() {
		houses := "yes"
		if !varga.HousesEnabled(d) {
			houses = "—"
		}
		name := divisionNames[d]
		rows = append(rows, []string{fmt.Sprintf("D%d", d), name, houses})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Division", "Name", "Houses").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		})

	return t.Render()
}
