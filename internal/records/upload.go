package records

import (
	"fmt"
	"path/filepath"
	"strings"

	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

// MaxDocumentBytes is the upload ceiling for a single document.
const MaxDocumentBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ValidateUpload checks the candidate document against the size ceiling and the
// extension whitelist. Only the final extension counts, compared case-insensitively.
func ValidateUpload(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "document filename is required")
	}
	if size <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "document is empty")
	}
	if size > MaxDocumentBytes {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("document exceeds the %d MB size limit", MaxDocumentBytes>>20))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"unsupported document type; allowed: pdf, doc, docx, jpg, jpeg, png")
	}
	return nil
}

// NormalizedExt returns the lower-cased final extension including the dot.
func NormalizedExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
