package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
)

// ReportSheet is the name of the single worksheet of a report.
const ReportSheet = "Results"

// Chart titles used in reports.
const (
	AveragesChartTitle = "Student averages"
	SubjectsChartTitle = "Subject averages"
	GradesChartTitle   = "Grade distribution"
)

// WriteReport renders m as an xlsx workbook with one worksheet holding the
// results table, the class summary and three charts (student averages,
// subject averages, grade distribution). Charts are omitted when there are
// no students.
func WriteReport(w io.Writer, m models.ClassMetrics) error {
	f, err := buildReport(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SaveReport writes the report for m to path.
func SaveReport(path string, m models.ClassMetrics) error {
	f, err := buildReport(m)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// reportLayout records where each block landed on the sheet.
type reportLayout struct {
	lastRow      int // last student row of the results table
	avgCol       int // column holding student averages
	subjectsRow  int // header row of the subject averages block
	gradesRow    int // header row of the grade distribution block
	summaryCol   int // first column of the side blocks
	subjectCount int
	gradeCount   int
}

func buildReport(m models.ClassMetrics) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	layout, err := writeResults(f, m)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, m, &layout); err != nil {
		f.Close()
		return nil, err
	}
	if len(m.Students) > 0 {
		if err := addCharts(f, layout); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeResults(f *excelize.File, m models.ClassMetrics) (reportLayout, error) {
	header := []interface{}{"#", "Name"}
	for _, s := range m.SubjectNames {
		header = append(header, s)
	}
	header = append(header, "Total", "Average", "Grade", "Status")

	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return reportLayout{}, fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range m.Students {
		row := []interface{}{i + 1, s.Name}
		for _, mk := range s.Marks {
			if mk.Present {
				row = append(row, mk.Value)
			} else {
				row = append(row, mk.String())
			}
		}
		row = append(row, s.Total, s.Average, string(s.Grade), string(s.Status))
		if err := f.SetSheetRow(ReportSheet, cellName(1, i+2), &row); err != nil {
			return reportLayout{}, fmt.Errorf("failed to write student %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return reportLayout{}, err
	}
	if err := f.SetCellStyle(ReportSheet, "A1", cellName(len(header), 1), bold); err != nil {
		return reportLayout{}, err
	}
	if err := f.SetColWidth(ReportSheet, "B", "B", 20); err != nil {
		return reportLayout{}, err
	}

	return reportLayout{
		lastRow:    len(m.Students) + 1,
		avgCol:     len(header) - 2,
		summaryCol: len(header) + 2,
	}, nil
}

func writeSummary(f *excelize.File, m models.ClassMetrics, layout *reportLayout) error {
	col := layout.summaryCol
	summary := [][]interface{}{
		{"Total students", len(m.Students)},
		{"Class average", m.ClassAverage},
		{"Highest average", m.HighestAverage},
		{"Lowest average", m.LowestAverage},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(ReportSheet, cellName(col, i+1), &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	oneDecimal := "0.0"
	numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &oneDecimal})
	if err != nil {
		return err
	}

	layout.subjectsRow = len(summary) + 2
	if err := f.SetSheetRow(ReportSheet, cellName(col, layout.subjectsRow), &[]interface{}{"Subject", "Average"}); err != nil {
		return err
	}
	for i, sa := range metrics.SubjectAverages(m) {
		row := layout.subjectsRow + 1 + i
		if err := f.SetSheetRow(ReportSheet, cellName(col, row), &[]interface{}{sa.Subject, sa.Average}); err != nil {
			return fmt.Errorf("failed to write subject average: %w", err)
		}
		if err := f.SetCellStyle(ReportSheet, cellName(col+1, row), cellName(col+1, row), numStyle); err != nil {
			return err
		}
		layout.subjectCount++
	}

	layout.gradesRow = layout.subjectsRow + layout.subjectCount + 2
	if err := f.SetSheetRow(ReportSheet, cellName(col, layout.gradesRow), &[]interface{}{"Grade", "Count"}); err != nil {
		return err
	}
	for i, gc := range m.GradeDistribution {
		row := []interface{}{string(gc.Grade), gc.Count}
		if err := f.SetSheetRow(ReportSheet, cellName(col, layout.gradesRow+1+i), &row); err != nil {
			return fmt.Errorf("failed to write grade count: %w", err)
		}
		layout.gradeCount++
	}
	return nil
}

func addCharts(f *excelize.File, layout reportLayout) error {
	anchorRow := layout.lastRow + 3
	dim := excelize.ChartDimension{Width: 520, Height: 280}

	bar := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Average",
			Categories: rangeRef(2, 2, 2, layout.lastRow),
			Values:     rangeRef(layout.avgCol, 2, layout.avgCol, layout.lastRow),
		}},
		Title:     []excelize.RichTextRun{{Text: AveragesChartTitle}},
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		Dimension: dim,
	}
	if err := f.AddChart(ReportSheet, cellName(1, anchorRow), bar); err != nil {
		return fmt.Errorf("failed to add averages chart: %w", err)
	}

	if layout.subjectCount > 0 {
		first, last := layout.subjectsRow+1, layout.subjectsRow+layout.subjectCount
		line := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       "Average",
				Categories: rangeRef(layout.summaryCol, first, layout.summaryCol, last),
				Values:     rangeRef(layout.summaryCol+1, first, layout.summaryCol+1, last),
			}},
			Title:     []excelize.RichTextRun{{Text: SubjectsChartTitle}},
			Legend:    excelize.ChartLegend{Position: "none"},
			PlotArea:  excelize.ChartPlotArea{ShowVal: true},
			Dimension: dim,
		}
		if err := f.AddChart(ReportSheet, cellName(1, anchorRow+16), line); err != nil {
			return fmt.Errorf("failed to add subjects chart: %w", err)
		}
	}

	if layout.gradeCount > 0 {
		first, last := layout.gradesRow+1, layout.gradesRow+layout.gradeCount
		pie := &excelize.Chart{
			Type: excelize.Pie,
			Series: []excelize.ChartSeries{{
				Name:       "Students",
				Categories: rangeRef(layout.summaryCol, first, layout.summaryCol, last),
				Values:     rangeRef(layout.summaryCol+1, first, layout.summaryCol+1, last),
			}},
			Title:     []excelize.RichTextRun{{Text: GradesChartTitle}},
			Legend:    excelize.ChartLegend{Position: "right"},
			PlotArea:  excelize.ChartPlotArea{ShowCatName: true, ShowVal: true},
			Dimension: excelize.ChartDimension{Width: 360, Height: 280},
		}
		if err := f.AddChart(ReportSheet, cellName(1, anchorRow+32), pie); err != nil {
			return fmt.Errorf("failed to add grades chart: %w", err)
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func rangeRef(col1, row1, col2, row2 int) string {
	start, _ := excelize.CoordinatesToCellName(col1, row1, true)
	end, _ := excelize.CoordinatesToCellName(col2, row2, true)
	return fmt.Sprintf("%s!%s:%s", ReportSheet, start, end)
}
