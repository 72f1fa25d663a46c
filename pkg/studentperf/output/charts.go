package output

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// chartTypeMap maps OOXML chart element tags to chart type names.
var chartTypeMap = map[string]string{
	"lineChart":     "Line",
	"barChart":      "Bar",
	"pieChart":      "Pie",
	"doughnutChart": "Doughnut",
	"areaChart":     "Area",
	"scatterChart":  "XYScatter",
}

// ChartSeries is the range metadata of one chart series.
type ChartSeries struct {
	// Categories is the range reference for category labels.
	Categories string `json:"categories,omitempty"`
	// Values is the range reference for the plotted values.
	Values string `json:"values,omitempty"`
}

// ReportChart describes a chart found in an xlsx package.
type ReportChart struct {
	// Part is the chart part name inside the package, e.g. xl/charts/chart1.xml.
	Part string `json:"part"`
	// ChartType is Column, Bar, Line or Pie (or another OOXML plot kind).
	ChartType string        `json:"chart_type"`
	Title     string        `json:"title,omitempty"`
	Series    []ChartSeries `json:"series"`
}

// InspectCharts lists the charts stored in an xlsx package, ordered by part
// name.
func InspectCharts(r io.ReaderAt, size int64) ([]ReportChart, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx package: %w", err)
	}

	var charts []ReportChart
	for _, f := range zr.File {
		dir, name := path.Split(f.Name)
		if dir != "xl/charts/" || !strings.HasPrefix(name, "chart") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, err
		}
		chart := parseChartXML(data)
		chart.Part = f.Name
		charts = append(charts, chart)
	}

	sort.Slice(charts, func(i, j int) bool { return charts[i].Part < charts[j].Part })
	return charts, nil
}

// InspectChartsFile is InspectCharts over the xlsx file at path.
func InspectChartsFile(path string) ([]ReportChart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return InspectCharts(f, info.Size())
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) ReportChart {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	chart := ReportChart{ChartType: "unknown"}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "title":
			// Axis titles come after the chart title.
			if title := parseChartTitle(decoder); chart.Title == "" {
				chart.Title = title
			}
		case "barDir":
			if attr(se, "val") == "col" && chart.ChartType == "Bar" {
				chart.ChartType = "Column"
			}
		default:
			if ct, ok := chartTypeMap[se.Name.Local]; ok {
				chart.ChartType = ct
			}
		}
		if se.Name.Local == "ser" {
			chart.Series = append(chart.Series, parseSeries(decoder))
		}
	}

	return chart
}

// parseChartTitle concatenates the text runs of a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var b strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					b.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(b.String())
}

// parseSeries parses a single ser element.
func parseSeries(decoder *xml.Decoder) ChartSeries {
	var s ChartSeries
	var section string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cat", "val":
				section = t.Name.Local
			case "f":
				ref, err := readElementText(decoder)
				depth--
				if err != nil {
					continue
				}
				if section == "cat" {
					s.Categories = ref
				} else if section == "val" {
					s.Values = ref
				}
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "cat" || t.Name.Local == "val" {
				section = ""
			}
		}
	}

	return s
}

// readElementText reads character data up to the end of the current element.
func readElementText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
