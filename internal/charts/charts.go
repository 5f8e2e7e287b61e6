// Package charts renders weekly trend series to self-contained HTML.
package charts

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridstats/go-cfb-metrics/internal/model"
)

// Config holds chart rendering options.
type Config struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Smooth   bool
	Colors   []string
}

// DefaultConfig returns the standard trend chart configuration.
func DefaultConfig() Config {
	return Config{
		Width:  "900px",
		Height: "500px",
		Smooth: true,
		Colors: []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// Series is one named weekly value series. Values must have one entry per
// week of the index; BYE weeks carry 0 and are labeled as such on the axis.
type Series struct {
	Name   string
	Values []int
}

// RenderTrend writes a line chart of one or more weekly series to an HTML
// file, with the x-axis labeled week-by-week from the index.
func RenderTrend(weeks model.WeekIndex, series []Series, config Config, outputPath string) error {
	if len(series) == 0 {
		return fmt.Errorf("no data series provided")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(series) > 1),
		}),
	)

	xLabels := make([]string, weeks.MaxWeek())
	for wk := 1; wk <= weeks.MaxWeek(); wk++ {
		opp := weeks.Opponent(wk)
		if opp == model.ByeOpponent {
			xLabels[wk-1] = "W" + strconv.Itoa(wk) + " (bye)"
		} else {
			xLabels[wk-1] = "W" + strconv.Itoa(wk) + " " + opp
		}
	}
	line.SetXAxis(xLabels)

	for i, s := range series {
		yData := make([]opts.LineData, len(s.Values))
		for j, v := range s.Values {
			yData[j] = opts.LineData{Value: v}
		}
		color := config.Colors[i%len(config.Colors)]
		line.AddSeries(s.Name, yData).
			SetSeriesOptions(
				charts.WithLineChartOpts(opts.LineChart{
					Smooth: opts.Bool(config.Smooth),
				}),
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: color,
				}),
			)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
