package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/pipeline"
	"github.com/nakshatralabs/jyotir/pkg/varga"
)

// Browser styles
var (
	browserDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	browserTabStyle = lipgloss.NewStyle().Foreground(colorGray)
	browserCurStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// chartBrowser - Interactive chart paging
// =============================================================================

// chartBrowser is the bubbletea model for paging through built charts.
// Each harmonic is one page; when vargottama was evaluated it appears as a
// final page after the charts.
type chartBrowser struct {
	name       string
	divisions  []int
	charts     map[int]*varga.Chart
	vargottama map[graha.Body]varga.VargottamaStatus
	cursor     int
}

// newChartBrowser creates a browser over a pipeline result.
func newChartBrowser(name string, result *pipeline.Result) chartBrowser {
	divisions := make([]int, 0, len(result.Charts))
	for d := range result.Charts {
		divisions = append(divisions, d)
	}
	slices.Sort(divisions)

	return chartBrowser{
		name:       name,
		divisions:  divisions,
		charts:     result.Charts,
		vargottama: result.Vargottama,
	}
}

// pageCount returns the number of pages: one per chart plus the vargottama
// page when present.
func (m chartBrowser) pageCount() int {
	n := len(m.divisions)
	if m.vargottama != nil {
		n++
	}
	return n
}

func (m chartBrowser) Init() tea.Cmd {
	return nil
}

func (m chartBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "down", "j", "tab":
			if m.cursor < m.pageCount()-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = m.pageCount() - 1
		}
	}
	return m, nil
}

func (m chartBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("←/→ page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if m.cursor < len(m.divisions) {
		b.WriteString(renderChart(m.charts[m.divisions[m.cursor]]))
	} else {
		b.WriteString(renderVargottama(m.vargottama))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, m.pageCount())))

	return b.String()
}

// renderTabs renders one label per page with the current page highlighted.
func (m chartBrowser) renderTabs() string {
	labels := make([]string, 0, m.pageCount())
	for i, d := range m.divisions {
		label := fmt.Sprintf("D%d", d)
		if i == m.cursor {
			labels = append(labels, browserCurStyle.Render(label))
		} else {
			labels = append(labels, browserTabStyle.Render(label))
		}
	}
	if m.vargottama != nil {
		label := "vargottama"
		if m.cursor == len(m.divisions) {
			labels = append(labels, browserCurStyle.Render(label))
		} else {
			labels = append(labels, browserTabStyle.Render(label))
		}
	}
	return "  " + strings.Join(labels, browserDimStyle.Render(" · "))
}
