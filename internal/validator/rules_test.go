package validator_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetext/internal/config"
	"slidetext/internal/domain"
	"slidetext/internal/validator"
)

func testLimits() *config.LimitsConfig {
	return &config.LimitsConfig{
		MaxFileSizeMB:    50,
		MinFileSizeBytes: 1000,
	}
}

func testEngine() *validator.Engine {
	return validator.NewEngine(validator.DefaultRegistry(testLimits()))
}

// pptxArchive builds zip bytes carrying the given entry names.
func pptxArchive(t *testing.T, entries ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// validUpload returns an upload that passes all five rules.
func validUpload(t *testing.T) *domain.Upload {
	t.Helper()
	data := pptxArchive(t, "[Content_Types].xml", "ppt/presentation.xml")
	return &domain.Upload{
		Name: "deck.pptx",
		Size: 2000,
		Data: data,
	}
}

func TestValidate_Accepted(t *testing.T) {
	reasons := testEngine().Validate(validUpload(t))
	assert.Empty(t, reasons)
}

func TestValidate_SizeCeiling(t *testing.T) {
	upload := validUpload(t)
	upload.Size = 51 * 1024 * 1024

	reasons := testEngine().Validate(upload)
	assert.Contains(t, reasons, "File too large. Maximum size: 50MB")
}

func TestValidate_Extension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		rejected bool
	}{
		{"pptx accepted", "deck.pptx", false},
		{"uppercase accepted", "DECK.PPTX", false},
		{"ppt rejected", "deck.ppt", true},
		{"pdf rejected", "deck.pdf", true},
		{"no extension rejected", "deck", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := validUpload(t)
			upload.Name = tt.filename

			reasons := testEngine().Validate(upload)
			if tt.rejected {
				assert.Contains(t, reasons, "Invalid file type. Only .pptx files allowed")
			} else {
				assert.NotContains(t, reasons, "Invalid file type. Only .pptx files allowed")
			}
		})
	}
}

func TestValidate_NotAZip(t *testing.T) {
	upload := validUpload(t)
	upload.Data = bytes.Repeat([]byte("x"), 2000)

	reasons := testEngine().Validate(upload)
	assert.Contains(t, reasons, "File is corrupted or not a valid PPTX file")
}

func TestValidate_MissingRequiredEntry(t *testing.T) {
	upload := validUpload(t)
	upload.Data = pptxArchive(t, "[Content_Types].xml", "ppt/slides/slide1.xml")

	reasons := testEngine().Validate(upload)
	assert.Contains(t, reasons, "File doesn't appear to be a valid PPTX format")

	// Reported once even when both required entries are missing.
	upload.Data = pptxArchive(t, "other.xml")
	reasons = testEngine().Validate(upload)
	count := 0
	for _, r := range reasons {
		if r == "File doesn't appear to be a valid PPTX format" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidate_FilenameCharacters(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"path separator", "dir/deck.pptx"},
		{"backslash", `dir\deck.pptx`},
		{"dotdot", "..deck.pptx"},
		{"angle bracket", "<deck>.pptx"},
		{"pipe", "deck|1.pptx"},
		{"colon", "deck:1.pptx"},
		{"asterisk", "deck*.pptx"},
		{"question mark", "deck?.pptx"},
		{"quote", `deck".pptx`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := validUpload(t)
			upload.Name = tt.filename

			reasons := testEngine().Validate(upload)
			assert.Contains(t, reasons, "Invalid characters in filename")
		})
	}
}

func TestValidate_SizeFloorBoundary(t *testing.T) {
	upload := validUpload(t)
	upload.Size = 999
	assert.Contains(t, testEngine().Validate(upload), "File is too small to be a valid PPTX")

	upload.Size = 1000
	assert.NotContains(t, testEngine().Validate(upload), "File is too small to be a valid PPTX")
}

func TestValidate_AllViolationsReportedTogether(t *testing.T) {
	// Oversized, wrong extension, not a zip, bad filename chars: every rule
	// runs and every reason is reported at once.
	upload := &domain.Upload{
		Name: "bad/name.txt",
		Size: 60 * 1024 * 1024,
		Data: []byte("not a zip at all"),
	}

	reasons := testEngine().Validate(upload)
	assert.Contains(t, reasons, "File too large. Maximum size: 50MB")
	assert.Contains(t, reasons, "Invalid file type. Only .pptx files allowed")
	assert.Contains(t, reasons, "File is corrupted or not a valid PPTX file")
	assert.Contains(t, reasons, "Invalid characters in filename")
	assert.Len(t, reasons, 4)
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	reg := validator.DefaultRegistry(testLimits())

	rules := reg.All()
	require.Len(t, rules, 5)
	assert.Equal(t, "size_ceiling", rules[0].Key())
	assert.Equal(t, "size_floor", rules[4].Key())

	assert.NotNil(t, reg.Get("container_structure"))
	assert.Nil(t, reg.Get("unknown"))
}

func TestRegistry_RuleNames(t *testing.T) {
	reg := validator.DefaultRegistry(testLimits())

	seen := make(map[string]bool)
	for _, rule := range reg.All() {
		assert.NotEmpty(t, rule.Name(), "rule %s has no display name", rule.Key())
		assert.False(t, seen[rule.Name()], "duplicate rule name %q", rule.Name())
		seen[rule.Name()] = true
	}
}
