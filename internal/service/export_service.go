package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edurank/teacher-directory-api/internal/models"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/export"
)

// Report formats supported by the export endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type topLister interface {
	Top(limit int) []models.Instructor
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type reportArchive interface {
	Save(filename string, data []byte) (string, error)
}

// ExportResult carries a rendered report.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders top-instructor reports.
type ExportService struct {
	directory topLister
	csv       csvRenderer
	pdf       pdfRenderer
	archive   reportArchive
	logger    *zap.Logger
}

// NewExportService constructs an ExportService. archive may be nil when
// rendered reports should not be kept on disk.
func NewExportService(directory topLister, csv csvRenderer, pdf pdfRenderer, archive reportArchive, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{directory: directory, csv: csv, pdf: pdf, archive: archive, logger: logger}
}

// TopInstructors renders the rated-instructor leaderboard in the given
// format.
func (s *ExportService) TopInstructors(format string, limit int) (ExportResult, error) {
	dataset := s.buildDataset(limit)

	switch strings.ToLower(format) {
	case FormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return s.result(data, FormatCSV, "text/csv"), nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, "Top instructors")
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return s.result(data, FormatPDF, "application/pdf"), nil
	default:
		return ExportResult{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
}

func (s *ExportService) buildDataset(limit int) export.Dataset {
	top := s.directory.Top(limit)

	rows := make([]map[string]string, 0, len(top))
	for _, instructor := range top {
		rows = append(rows, map[string]string{
			"id":         strconv.Itoa(instructor.ID),
			"surname":    instructor.Surname,
			"name":       instructor.Name,
			"middlename": instructor.Middlename,
			"department": instructor.Department,
			"average":    strconv.FormatFloat(instructor.Rating.Average, 'f', 1, 64),
			"reviews":    strconv.Itoa(instructor.Rating.Count),
		})
	}

	return export.Dataset{
		Headers: []string{"id", "surname", "name", "middlename", "department", "average", "reviews"},
		Rows:    rows,
	}
}

func (s *ExportService) result(data []byte, format, contentType string) ExportResult {
	filename := fmt.Sprintf("top-instructors-%s.%s", uuid.NewString(), format)
	if s.archive != nil {
		if _, err := s.archive.Save(filename, data); err != nil {
			s.logger.Warn("report archive write failed", zap.String("file", filename), zap.Error(err))
		}
	}
	s.logger.Info("report rendered", zap.String("file", filename), zap.Int("bytes", len(data)))
	return ExportResult{Filename: filename, ContentType: contentType, Data: data}
}
