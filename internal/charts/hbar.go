package charts

import (
	"fmt"
	"html/template"
	"strings"
)

// HBars renders a horizontal bar chart, one bar per label. The height grows
// with the number of bars so a long staff leaderboard stays readable.
func HBars(width int, values []float64, labels []string, opts HBarOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("charts: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("charts: labels length must match values")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		labelWidth = 130
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	barColor := fallback(opts.BarColor, "#b4881d")
	axisColor := fallback(opts.AxisColor, "#6b6255")
	gridColor := fallback(opts.GridColor, "#d8d0c0")

	rowHeight := DefaultBarHeight + 10
	height := int(2*padding + rowHeight*float64(len(values)))
	chartWidth := float64(width) - 2*padding - labelWidth
	if chartWidth <= 0 {
		return "", fmt.Errorf("charts: viewport too small")
	}

	_, maxVal := bounds(values)
	if maxVal <= 0 {
		maxVal = 1
	}
	scale := chartWidth / maxVal
	originX := padding + labelWidth

	titleID := makeID(opts.Title, "hbar-title")
	descID := makeID(opts.Title, "hbar-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=%q>%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Bar chart"))))
	b.WriteString(fmt.Sprintf("<desc id=%q>%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Leaderboard"))))

	chartBottom := float64(height) - padding
	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		x := originX + ratio*chartWidth
		value := maxVal * ratio
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", x, padding, x, chartBottom, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=%q font-size=\"10\" text-anchor=\"middle\">%s</text>", x, chartBottom+14, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1\"></line>", originX, padding, originX, chartBottom, axisColor))

	for i, value := range values {
		y := padding + float64(i)*rowHeight + (rowHeight-DefaultBarHeight)/2
		barWidth := value * scale
		if barWidth < 0 {
			barWidth = 0
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"3\" fill=%q></rect>", originX, y, barWidth, DefaultBarHeight, barColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=%q font-size=\"11\" text-anchor=\"end\">%s</text>", originX-8, y+DefaultBarHeight/2+4, axisColor, template.HTMLEscapeString(labels[i])))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=%q font-size=\"10\">%s</text>", originX+barWidth+6, y+DefaultBarHeight/2+4, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
