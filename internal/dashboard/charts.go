package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Chart kinds understood by Chart.js.
const (
	ChartBar = "bar"
	ChartPie = "pie"
)

// Metric names for bar charts; they pick the tooltip unit.
const (
	MetricCharacters = "characters"
	MetricWords      = "words"
)

// Pie legend styling is fixed, not derived from data.
const (
	pieLegendPosition = "right"
	pieLegendBoxWidth = 14
	pieLegendPadding  = 12
	pieLegendFontSize = 13
)

// ChartConfig is the declarative configuration handed to Chart.js for one
// mount point. TooltipLabels holds the tooltip text of every data index; the
// page bootstrap installs a callback that reads from it.
type ChartConfig struct {
	Type          string       `json:"type"`
	Data          ChartData    `json:"data"`
	Options       ChartOptions `json:"options"`
	TooltipLabels []string     `json:"tooltipLabels"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string   `json:"label,omitempty"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderWidth     int      `json:"borderWidth"`
}

type ChartOptions struct {
	Responsive bool         `json:"responsive"`
	Plugins    ChartPlugins `json:"plugins"`
	Scales     *ChartScales `json:"scales,omitempty"`
}

type ChartPlugins struct {
	Legend ChartLegend `json:"legend"`
	Title  ChartTitle  `json:"title"`
}

type ChartLegend struct {
	Display  bool              `json:"display"`
	Position string            `json:"position,omitempty"`
	Labels   *ChartLegendLabel `json:"labels,omitempty"`
}

type ChartLegendLabel struct {
	BoxWidth int       `json:"boxWidth"`
	Padding  int       `json:"padding"`
	Font     ChartFont `json:"font"`
}

type ChartFont struct {
	Size int `json:"size"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type ChartScales struct {
	Y ChartAxis `json:"y"`
}

type ChartAxis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

// JSON encodes the configuration for embedding in the page.
func (c *ChartConfig) JSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart config: %w", err)
	}
	return string(data), nil
}

// Values returns the data of the first dataset.
func (c *ChartConfig) Values() []int {
	if len(c.Data.Datasets) == 0 {
		return nil
	}
	return c.Data.Datasets[0].Data
}

// BuildBarChart builds a bar chart with one bar per label. The y-axis starts
// at zero, the legend is hidden, and tooltips show the raw value followed by
// the metric's unit. A nil palette means GenerateColors(len(labels)).
func BuildBarChart(labels []string, values []int, title, metric string, palette []string, loc *Localizer) *ChartConfig {
	if palette == nil {
		palette = GenerateColors(len(labels))
	}

	unit := metricUnit(metric, loc)
	tooltips := make([]string, len(values))
	for i, v := range values {
		tooltips[i] = strconv.Itoa(v) + " " + unit
	}

	return &ChartConfig{
		Type: ChartBar,
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:           title,
				Data:            values,
				BackgroundColor: palette,
				BorderWidth:     1,
			}},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title:  ChartTitle{Display: title != "", Text: title},
			},
			Scales: &ChartScales{Y: ChartAxis{BeginAtZero: true}},
		},
		TooltipLabels: tooltips,
	}
}

// BuildPieChart builds a pie chart with one slice per label. Tooltips read
// "label: value (percentage%)". A nil palette means GenerateColors(len(labels)).
func BuildPieChart(labels []string, values []int, title string, palette []string) *ChartConfig {
	if palette == nil {
		palette = GenerateColors(len(labels))
	}

	percentages := Percentages(values)
	tooltips := make([]string, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		tooltips[i] = fmt.Sprintf("%s: %d (%d%%)", label, v, percentages[i])
	}

	return &ChartConfig{
		Type: ChartPie,
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Data:            values,
				BackgroundColor: palette,
				BorderWidth:     1,
			}},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{
					Display:  true,
					Position: pieLegendPosition,
					Labels: &ChartLegendLabel{
						BoxWidth: pieLegendBoxWidth,
						Padding:  pieLegendPadding,
						Font:     ChartFont{Size: pieLegendFontSize},
					},
				},
				Title: ChartTitle{Display: title != "", Text: title},
			},
		},
		TooltipLabels: tooltips,
	}
}

// Percentages returns round(v / sum * 100) for every value, rounding halves
// up. A non-positive sum yields all zeros.
func Percentages(values []int) []int {
	sum := 0
	for _, v := range values {
		sum += v
	}

	result := make([]int, len(values))
	if sum <= 0 {
		return result
	}
	for i, v := range values {
		result[i] = int(math.Floor(float64(v)/float64(sum)*100 + 0.5))
	}
	return result
}

func metricUnit(metric string, loc *Localizer) string {
	switch metric {
	case MetricCharacters:
		return loc.Text(msgUnitCharacters)
	case MetricWords:
		return loc.Text(msgUnitWords)
	default:
		return metric
	}
}

// senderValue is one sender's value for a per-sender metric.
type senderValue struct {
	name  string
	value int
}

// rankSenders orders senders by descending metric value. The sort is stable,
// so ties keep discovery order. Senders missing from metric count as zero.
func rankSenders(senders []string, metric map[string]int) []senderValue {
	ranked := make([]senderValue, len(senders))
	for i, name := range senders {
		ranked[i] = senderValue{name: name, value: metric[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].value > ranked[j].value
	})
	return ranked
}

// splitRanked returns parallel label and value slices.
func splitRanked(ranked []senderValue) ([]string, []int) {
	labels := make([]string, len(ranked))
	values := make([]int, len(ranked))
	for i, sv := range ranked {
		labels[i] = sv.name
		values[i] = sv.value
	}
	return labels, values
}
