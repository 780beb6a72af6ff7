package validator

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"slidetext/internal/config"
	"slidetext/internal/domain"
)

// Archive entries every well-formed .pptx package carries.
var requiredEntries = []string{
	"[Content_Types].xml",
	"ppt/presentation.xml",
}

// Characters never allowed in a declared filename. The list guards display
// and downstream use of the name, not the file's content.
var dangerousFilenameParts = []string{
	"/", `\`, "..", "<", ">", "|", ":", "*", "?", `"`,
}

// DefaultRegistry returns a registry with the five builtin acceptance rules
// bounded by the configured limits.
func DefaultRegistry(limits *config.LimitsConfig) *Registry {
	reg := NewRegistry()
	reg.Register(&sizeCeilingRule{limits: limits})
	reg.Register(&extensionRule{})
	reg.Register(&containerRule{})
	reg.Register(&filenameRule{})
	reg.Register(&sizeFloorRule{limits: limits})
	return reg
}

// sizeCeilingRule rejects uploads above the configured size ceiling.
type sizeCeilingRule struct {
	limits *config.LimitsConfig
}

func (r *sizeCeilingRule) Key() string  { return "size_ceiling" }
func (r *sizeCeilingRule) Name() string { return "Maximum file size" }

func (r *sizeCeilingRule) Check(upload *domain.Upload) []string {
	if upload.Size > r.limits.MaxFileSizeBytes() {
		return []string{fmt.Sprintf("File too large. Maximum size: %dMB", r.limits.MaxFileSizeMB)}
	}
	return nil
}

// extensionRule rejects any declared name whose extension is not .pptx.
type extensionRule struct{}

func (r *extensionRule) Key() string  { return "extension" }
func (r *extensionRule) Name() string { return "Allowed file type" }

func (r *extensionRule) Check(upload *domain.Upload) []string {
	if strings.ToLower(filepath.Ext(upload.Name)) != ".pptx" {
		return []string{"Invalid file type. Only .pptx files allowed"}
	}
	return nil
}

// containerRule checks that the bytes open as a zip archive carrying the
// entries every .pptx package has.
type containerRule struct{}

func (r *containerRule) Key() string  { return "container_structure" }
func (r *containerRule) Name() string { return "Package structure" }

func (r *containerRule) Check(upload *domain.Upload) (reasons []string) {
	// Anything unexpected while probing the archive becomes a generic
	// reason; raw parser failures never reach the caller.
	defer func() {
		if recover() != nil {
			reasons = []string{"Unable to validate file structure"}
		}
	}()

	zr, err := zip.NewReader(bytes.NewReader(upload.Data), int64(len(upload.Data)))
	if err != nil {
		return []string{"File is corrupted or not a valid PPTX file"}
	}

	entries := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = true
	}
	for _, required := range requiredEntries {
		if !entries[required] {
			return []string{"File doesn't appear to be a valid PPTX format"}
		}
	}
	return nil
}

// filenameRule rejects declared names containing path or shell metacharacters.
type filenameRule struct{}

func (r *filenameRule) Key() string  { return "filename_chars" }
func (r *filenameRule) Name() string { return "Filename characters" }

func (r *filenameRule) Check(upload *domain.Upload) []string {
	for _, part := range dangerousFilenameParts {
		if strings.Contains(upload.Name, part) {
			return []string{"Invalid characters in filename"}
		}
	}
	return nil
}

// sizeFloorRule rejects uploads too small to be a real package.
type sizeFloorRule struct {
	limits *config.LimitsConfig
}

func (r *sizeFloorRule) Key() string  { return "size_floor" }
func (r *sizeFloorRule) Name() string { return "Minimum file size" }

func (r *sizeFloorRule) Check(upload *domain.Upload) []string {
	if upload.Size < r.limits.MinFileSizeBytes {
		return []string{"File is too small to be a valid PPTX"}
	}
	return nil
}
