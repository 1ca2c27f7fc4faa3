package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edurank/teacher-directory-api/internal/models"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
	"github.com/edurank/teacher-directory-api/pkg/export"
)

type fakeTopLister struct {
	instructors []models.Instructor
	limit       int
}

func (f *fakeTopLister) Top(limit int) []models.Instructor {
	f.limit = limit
	return f.instructors
}

func TestExportServiceTopInstructorsCSV(t *testing.T) {
	lister := &fakeTopLister{instructors: []models.Instructor{
		{ID: 101, Surname: "Ivanov", Name: "Ivan", Middlename: "Ivanovich", Department: "Physics", Rating: models.Rating{Average: 4.5, Count: 2}},
		{ID: 102, Surname: "Petrova", Name: "Anna", Middlename: "Sergeevna", Department: "Math", Rating: models.Rating{Average: 4.0, Count: 1}},
	}}
	svc := NewExportService(lister, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	result, err := svc.TopInstructors(FormatCSV, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, lister.limit)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "top-instructors-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,surname,name,middlename,department,average,reviews", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "101,Ivanov,Ivan,Ivanovich,Physics,4.5,2")
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&fakeTopLister{}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	result, err := svc.TopInstructors("", 5)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportServiceTopInstructorsPDF(t *testing.T) {
	lister := &fakeTopLister{instructors: []models.Instructor{
		{ID: 101, Surname: "Ivanov", Name: "Ivan", Rating: models.Rating{Average: 5, Count: 1}},
	}}
	svc := NewExportService(lister, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	result, err := svc.TopInstructors(FormatPDF, 3)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.NotEmpty(t, result.Data)
}

type fakeArchive struct {
	saved map[string][]byte
}

func (f *fakeArchive) Save(filename string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[filename] = data
	return filename, nil
}

func TestExportServiceArchivesRenderedReports(t *testing.T) {
	archive := &fakeArchive{}
	svc := NewExportService(&fakeTopLister{}, export.NewCSVExporter(), export.NewPDFExporter(), archive, nil)

	result, err := svc.TopInstructors(FormatCSV, 5)
	require.NoError(t, err)
	require.Len(t, archive.saved, 1)
	assert.Equal(t, result.Data, archive.saved[result.Filename])
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&fakeTopLister{}, export.NewCSVExporter(), export.NewPDFExporter(), nil, nil)

	_, err := svc.TopInstructors("xlsx", 5)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
