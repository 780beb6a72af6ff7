package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slidetext/internal/config"
	"slidetext/internal/domain"
	"slidetext/internal/service"
	"slidetext/internal/validator"
	"slidetext/mocks"
)

func testLimits() *config.LimitsConfig {
	return &config.LimitsConfig{
		MaxFileSizeMB:    50,
		MinFileSizeBytes: 1000,
	}
}

func newService(extractor *mocks.MockTextExtractor) service.ConvertService {
	rules := validator.NewEngine(validator.DefaultRegistry(testLimits()))
	return service.NewConvertService(rules, extractor)
}

// pptxBytes returns zip bytes that pass structural validation and clear the
// minimum size floor.
func pptxBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "ppt/presentation.xml"} {
		// Stored, not deflated, so the archive stays above the size floor.
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write(bytes.Repeat([]byte("<xml/>"), 120))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.GreaterOrEqual(t, buf.Len(), 1000)
	return buf.Bytes()
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	file, err := form.File["file"][0].Open()
	require.NoError(t, err)
	return file, form.File["file"][0]
}

func convertInput(t *testing.T, filename string, content []byte) service.ConvertInput {
	t.Helper()
	file, header := createMultipartFile(t, filename, content)
	t.Cleanup(func() { _ = file.Close() })
	return service.ConvertInput{File: file, Header: header}
}

func TestConvertService_Success(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	svc := newService(extractor)

	extractor.On("Extract", mock.Anything, mock.AnythingOfType("*domain.Upload")).
		Return(&domain.Extraction{Text: "\n--- Slide 1 ---\nhello\n", SlideCount: 1}, nil)

	result, err := svc.Convert(context.Background(), convertInput(t, "deck.pptx", pptxBytes(t)))
	require.NoError(t, err)

	assert.Equal(t, 1, result.SlideCount)
	assert.False(t, result.NoText)
	assert.Equal(t, "extracted_deck.txt", result.DownloadName)
	assert.Equal(t, len("\n--- Slide 1 ---\nhello\n"), result.CharCount)
	assert.Empty(t, result.Summary)
	extractor.AssertExpectations(t)
}

func TestConvertService_ValidationRejected(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	svc := newService(extractor)

	_, err := svc.Convert(context.Background(), convertInput(t, "deck.pdf", []byte("tiny")))
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Reasons, "Invalid file type. Only .pptx files allowed")
	assert.Contains(t, vErr.Reasons, "File is too small to be a valid PPTX")

	// Rejected uploads never reach the extractor.
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestConvertService_SummaryOnlyForLongText(t *testing.T) {
	tests := []struct {
		name        string
		textLen     int
		wantSummary bool
	}{
		{"at threshold", 1000, false},
		{"above threshold", 1001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := new(mocks.MockTextExtractor)
			svc := newService(extractor)

			extractor.On("Extract", mock.Anything, mock.Anything).
				Return(&domain.Extraction{Text: strings.Repeat("a", tt.textLen), SlideCount: 2}, nil)

			result, err := svc.Convert(context.Background(), convertInput(t, "deck.pptx", pptxBytes(t)))
			require.NoError(t, err)

			if tt.wantSummary {
				assert.NotEmpty(t, result.Summary)
				assert.Equal(t, "summary_deck.txt", result.SummaryName)
				assert.Contains(t, result.Summary, "[... content truncated for summary ...]")
			} else {
				assert.Empty(t, result.Summary)
				assert.Empty(t, result.SummaryName)
			}
		})
	}
}

func TestConvertService_NoTextOutcome(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	svc := newService(extractor)

	// Zero slides is a normal terminal state, not an error.
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.Extraction{Text: "", SlideCount: 0}, nil)

	result, err := svc.Convert(context.Background(), convertInput(t, "deck.pptx", pptxBytes(t)))
	require.NoError(t, err)
	assert.True(t, result.NoText)
	assert.Equal(t, 0, result.SlideCount)
}

func TestConvertService_ExtractorErrorPropagates(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	svc := newService(extractor)

	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.ErrExtractionFailed)

	_, err := svc.Convert(context.Background(), convertInput(t, "deck.pptx", pptxBytes(t)))
	assert.True(t, errors.Is(err, domain.ErrExtractionFailed))
}
