package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"asistencia/internal/domain"
	"asistencia/internal/importer"
	"asistencia/internal/pdfexport"
	"asistencia/internal/service"
	"asistencia/mocks"
)

const maxImport = 1 << 20

type sheetDeps struct {
	store    *mocks.MockSheetStore
	sessions *mocks.MockSessionService
	renderer *mocks.MockSheetRenderer
	archive  *mocks.MockArchiveService
}

func newSheetService(withArchive bool) (service.SheetService, sheetDeps) {
	d := sheetDeps{
		store:    new(mocks.MockSheetStore),
		sessions: new(mocks.MockSessionService),
		renderer: new(mocks.MockSheetRenderer),
	}
	var archive service.ArchiveService
	if withArchive {
		d.archive = new(mocks.MockArchiveService)
		archive = d.archive
	}
	return service.NewSheetService(d.store, d.sessions, d.renderer, archive, maxImport), d
}

func validEntry() domain.Entry {
	return domain.Entry{
		Date:             "01/01/2025",
		Time:             "08:00",
		IdentityDocument: "111",
		Insurer:          "EPS-A",
		PatientName:      "Ana",
		Procedure:        "Curación",
	}
}

func TestSheetService_Create(t *testing.T) {
	svc, d := newSheetService(false)
	sheet := &domain.Sheet{ID: uuid.New()}
	expires := time.Now().Add(time.Hour)

	d.store.On("Create", mock.Anything).Return(sheet, nil)
	d.sessions.On("Issue", sheet.ID).Return(&service.SessionToken{Token: "tok", ExpiresAt: expires}, nil)

	session, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sheet, session.Sheet)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, expires, session.ExpiresAt)
}

func TestSheetService_Create_TokenFailureRemovesSheet(t *testing.T) {
	svc, d := newSheetService(false)
	sheet := &domain.Sheet{ID: uuid.New()}

	d.store.On("Create", mock.Anything).Return(sheet, nil)
	d.sessions.On("Issue", sheet.ID).Return(nil, errors.New("signing failed"))
	d.store.On("Delete", mock.Anything, sheet.ID).Return(nil)

	_, err := svc.Create(context.Background())
	require.Error(t, err)
	d.store.AssertCalled(t, "Delete", mock.Anything, sheet.ID)
}

func TestSheetService_AddEntry(t *testing.T) {
	svc, d := newSheetService(false)
	id := uuid.New()
	e := validEntry()

	d.store.On("Append", mock.Anything, id, []domain.Entry{e}).Return(&domain.Sheet{ID: id, EntryCount: 1}, nil)

	sheet, err := svc.AddEntry(context.Background(), id, e)
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.EntryCount)
}

func TestSheetService_AddEntry_ValidationLeavesStoreUntouched(t *testing.T) {
	svc, d := newSheetService(false)
	e := validEntry()
	e.PatientName = "  "
	e.Procedure = ""

	_, err := svc.AddEntry(context.Background(), uuid.New(), e)

	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"patient_name", "procedure"}, verr.Fields)
	d.store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestSheetService_Import(t *testing.T) {
	svc, d := newSheetService(false)
	id := uuid.New()
	csv := "date,identity_document,patient_name,procedure\n" +
		"01/01/2025,111,Ana,Curación\n" +
		"01/01/2025,,Luis,Curación\n"

	d.store.On("Get", mock.Anything, id).Return(&domain.Sheet{ID: id}, nil)
	d.store.On("Append", mock.Anything, id, []domain.Entry{
		{Date: "01/01/2025", IdentityDocument: "111", PatientName: "Ana", Procedure: "Curación"},
	}).Return(&domain.Sheet{ID: id, EntryCount: 1}, nil)

	res, err := svc.Import(context.Background(), id, service.ImportInput{
		Filename: "entradas.csv",
		Size:     int64(len(csv)),
		Body:     strings.NewReader(csv),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, []importer.RowError{{Row: 2, Fields: []string{"identity_document"}}}, res.Rejected)
	assert.Equal(t, 1, res.Sheet.EntryCount)
}

func TestSheetService_Import_TooLarge(t *testing.T) {
	svc, _ := newSheetService(false)

	_, err := svc.Import(context.Background(), uuid.New(), service.ImportInput{
		Filename: "big.csv",
		Size:     maxImport + 1,
		Body:     strings.NewReader(""),
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestSheetService_Import_UnsupportedType(t *testing.T) {
	svc, _ := newSheetService(false)

	_, err := svc.Import(context.Background(), uuid.New(), service.ImportInput{
		Filename: "notes.docx",
		Body:     strings.NewReader(""),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestSheetService_Import_UnknownSheet(t *testing.T) {
	svc, d := newSheetService(false)
	id := uuid.New()
	d.store.On("Get", mock.Anything, id).Return(nil, domain.ErrSheetNotFound)

	_, err := svc.Import(context.Background(), id, service.ImportInput{
		Filename: "a.json",
		Body:     strings.NewReader("[]"),
	})
	assert.ErrorIs(t, err, domain.ErrSheetNotFound)
}

func TestSheetService_GeneratePDF(t *testing.T) {
	svc, d := newSheetService(false)
	id := uuid.New()
	entries := []domain.Entry{validEntry()}
	warning := errors.New("logo missing")
	doc := &pdfexport.Document{Bytes: []byte("%PDF-"), PageCount: 1, RowCount: 1, Warnings: []error{warning}}

	d.store.On("List", mock.Anything, id).Return(entries, nil)
	d.renderer.On("Generate", entries).Return(doc, nil)

	out, err := svc.GeneratePDF(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, doc, out.Document)
	assert.Nil(t, out.Archived)
	assert.Equal(t, []error{warning}, out.Warnings)
}

func TestSheetService_GeneratePDF_RenderFailure(t *testing.T) {
	svc, d := newSheetService(true)
	id := uuid.New()

	d.store.On("List", mock.Anything, id).Return([]domain.Entry{}, nil)
	d.renderer.On("Generate", []domain.Entry{}).Return(nil, domain.ErrDocumentGenerationFailed)

	_, err := svc.GeneratePDF(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrDocumentGenerationFailed)
	d.archive.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything)
}

func TestSheetService_GeneratePDF_Archives(t *testing.T) {
	svc, d := newSheetService(true)
	id := uuid.New()
	doc := &pdfexport.Document{Bytes: []byte("%PDF-"), PageCount: 1}
	issued := &domain.IssuedDocument{ID: uuid.New(), SheetID: id}

	d.store.On("List", mock.Anything, id).Return([]domain.Entry{}, nil)
	d.renderer.On("Generate", []domain.Entry{}).Return(doc, nil)
	d.archive.On("Archive", mock.Anything, id, doc).Return(issued, nil)

	out, err := svc.GeneratePDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, issued, out.Archived)
	assert.Empty(t, out.Warnings)
}

func TestSheetService_GeneratePDF_ArchiveFailureIsWarning(t *testing.T) {
	svc, d := newSheetService(true)
	id := uuid.New()
	doc := &pdfexport.Document{Bytes: []byte("%PDF-"), PageCount: 1}

	d.store.On("List", mock.Anything, id).Return([]domain.Entry{}, nil)
	d.renderer.On("Generate", []domain.Entry{}).Return(doc, nil)
	d.archive.On("Archive", mock.Anything, id, doc).Return(nil, domain.ErrUploadFailed)

	out, err := svc.GeneratePDF(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, doc, out.Document)
	require.Len(t, out.Warnings, 1)
	assert.ErrorIs(t, out.Warnings[0], domain.ErrUploadFailed)
}

func TestSheetService_GeneratePDF_UnknownSheet(t *testing.T) {
	svc, d := newSheetService(false)
	id := uuid.New()
	d.store.On("List", mock.Anything, id).Return(nil, domain.ErrSheetNotFound)

	_, err := svc.GeneratePDF(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrSheetNotFound)
}
