package records

import (
	"testing"

	pkgerrors "github.com/mateohidalgo/landrecords-backend/pkg/errors"
)

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "pdf within limit", filename: "deed.pdf", size: 1 << 20},
		{name: "uppercase extension", filename: "DEED.PDF", size: 1024},
		{name: "mixed case jpeg", filename: "survey.JpEg", size: 2048},
		{name: "docx", filename: "agreement.docx", size: 4096},
		{name: "exactly at limit", filename: "map.png", size: MaxDocumentBytes},
		{name: "over limit", filename: "huge.pdf", size: MaxDocumentBytes + 1, wantErr: true},
		{name: "eleven megabyte pdf", filename: "scan.pdf", size: 11 << 20, wantErr: true},
		{name: "executable", filename: "malware.exe", size: 1024, wantErr: true},
		{name: "no extension", filename: "deed", size: 1024, wantErr: true},
		{name: "only final extension counts", filename: "deed.pdf.exe", size: 1024, wantErr: true},
		{name: "empty file", filename: "deed.pdf", size: 0, wantErr: true},
		{name: "empty filename", filename: "", size: 1024, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(tc.filename, tc.size)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q (%d bytes)", tc.filename, tc.size)
				}
				typed := pkgerrors.As(err)
				if typed == nil || typed.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected %q (%d bytes) to be accepted: %v", tc.filename, tc.size, err)
			}
		})
	}
}

func TestNormalizedExt(t *testing.T) {
	if got := NormalizedExt("Deed.PDF"); got != ".pdf" {
		t.Fatalf("expected .pdf, got %q", got)
	}
	if got := NormalizedExt("archive.tar.gz"); got != ".gz" {
		t.Fatalf("expected .gz, got %q", got)
	}
	if got := NormalizedExt("noext"); got != "" {
		t.Fatalf("expected empty extension, got %q", got)
	}
}
