package report

import (
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	sparkChars          = " .:-=+*#%@"
	barChar             = "█"
	maxBarWidth         = 40
	terminalWidthBackup = 80
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// BarChart renders one horizontal bar per label, scaled to the widest value.
func BarChart(labels []string, values []float64, width int) []string {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil
	}
	if width <= 0 || width > maxBarWidth {
		width = maxBarWidth
	}
	maxVal := 0.0
	labelWidth := 0
	for i, v := range values {
		if v > maxVal {
			maxVal = v
		}
		if w := displayWidth(labels[i]); w > labelWidth {
			labelWidth = w
		}
	}
	lines := make([]string, 0, len(labels))
	for i, v := range values {
		bar := ""
		if maxVal > 0 {
			n := int(math.Round(v / maxVal * float64(width)))
			if n == 0 && v > 0 {
				n = 1
			}
			bar = strings.Repeat(barChar, n)
		}
		lines = append(lines, fmt.Sprintf("%s %s %.0f", padCell(labels[i], labelWidth, false), bar, v))
	}
	return lines
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
