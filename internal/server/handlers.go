package server

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"golang.org/x/text/language"

	"github.com/ukaji3/studentperf-go/pkg/studentperf"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/output"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ParseRequest is the JSON form of POST /api/parse.
type ParseRequest struct {
	CSV string `json:"csv"`
}

// AddStudentRequest is the body of POST /api/students.
type AddStudentRequest struct {
	Name  string `json:"name"`
	Marks string `json:"marks" binding:"required"`
}

// SnapshotResponse is returned after the dataset changes.
type SnapshotResponse struct {
	Table models.RawTable `json:"table"`
	output.Document
}

func newSnapshotResponse(snap studentperf.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Table:    snap.Table,
		Document: output.NewDocument("", snap.Metrics),
	}
}

// Parse handles POST /api/parse. The body is either raw CSV text or JSON
// {"csv": "..."}.
func (s *Server) Parse(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if isTooLarge(err) {
			abortTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body: " + err.Error()})
		return
	}

	text := string(body)
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req ParseRequest
		if err := binding.JSON.BindBody(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		text = req.CSV
	}

	snap, err := s.session.Load(c.Request.Context(), text)
	if err != nil {
		s.metrics.Parses.WithLabelValues("rejected").Inc()
		s.writeError(c, err)
		return
	}
	s.metrics.Parses.WithLabelValues("ok").Inc()
	s.metrics.Students.Set(float64(len(snap.Metrics.Students)))
	c.JSON(http.StatusOK, newSnapshotResponse(snap))
}

// GetMetrics handles GET /api/metrics?minAvg=&sort=&locale=
func (s *Server) GetMetrics(c *gin.Context) {
	view, ok := s.view(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.NewDocument("", view))
}

// GetSubjects handles GET /api/subjects
func (s *Server) GetSubjects(c *gin.Context) {
	snap, err := s.session.Current()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics.SubjectAverages(snap.Metrics))
}

// AddStudent handles POST /api/students
func (s *Server) AddStudent(c *gin.Context) {
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			abortTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	snap, err := s.session.AddStudent(c.Request.Context(), req.Name, req.Marks)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.StudentsAdded.Inc()
	s.metrics.Students.Set(float64(len(snap.Metrics.Students)))
	c.JSON(http.StatusCreated, newSnapshotResponse(snap))
}

// Export handles GET /api/export. It always returns the full table.
func (s *Server) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.session.Export(&buf); err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Report handles GET /api/report. The view query parameters apply.
func (s *Server) Report(c *gin.Context) {
	view, ok := s.view(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := output.WriteReport(&buf, view); err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Clear handles DELETE /api/session
func (s *Server) Clear(c *gin.Context) {
	if err := s.session.Clear(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.Students.Set(0)
	c.Status(http.StatusNoContent)
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}

func (s *Server) view(c *gin.Context) (models.ClassMetrics, bool) {
	sortBy, err := metrics.ParseSortBy(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.ClassMetrics{}, false
	}
	opts := studentperf.ViewOptions{
		MinAverage: metrics.ParseMinAverage(c.Query("minAvg")),
		SortBy:     sortBy,
	}
	if loc := c.Query("locale"); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid locale: " + loc})
			return models.ClassMetrics{}, false
		}
		opts.Locale = tag
	}

	view, err := s.session.View(opts)
	if err != nil {
		s.writeError(c, err)
		return models.ClassMetrics{}, false
	}
	return view, true
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, studentperf.ErrEmptyInput), errors.Is(err, studentperf.ErrMalformedHeader):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, studentperf.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "No data"})
	case errors.Is(err, studentperf.ErrUnknownSort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
