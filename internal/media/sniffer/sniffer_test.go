package sniffer

import (
	"bytes"
	"errors"
	"net/http"
	"testing"
)

var (
	pdf  = []byte("%PDF-1.7\n%...")
	doc  = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0, 0}
	docx = []byte{'P', 'K', 0x03, 0x04, 0x14, 0}
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want DocType
	}{
		{"pdf", pdf, TypePDF},
		{"doc", doc, TypeDOC},
		{"docx", docx, TypeDOCX},
	}
	for _, tt := range tests {
		got, err := DetectHead(tt.head)
		if err != nil || got.Type != tt.want {
			t.Errorf("%s: DetectHead = %v, %v; want %v", tt.name, got.Type, err, tt.want)
		}
	}
	if _, err := DetectHead([]byte("\x89PNG\r\n")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("png err = %v, want ErrUnknownType", err)
	}
}

func TestDetectReader(t *testing.T) {
	res, head, err := Detect(bytes.NewReader(pdf))
	if err != nil || res.MIME != MIMEPDF || !bytes.Equal(head, pdf) {
		t.Errorf("Detect = %+v, %q, %v", res, head, err)
	}
}

func TestCheckResume(t *testing.T) {
	if _, err := CheckResume("application/pdf; charset=binary", pdf); err != nil {
		t.Errorf("pdf rejected: %v", err)
	}
	if _, err := CheckResume(MIMEDOCX, docx); err != nil {
		t.Errorf("docx rejected: %v", err)
	}
	if _, err := CheckResume("image/png", pdf); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("png declared: err = %v, want ErrNotAllowed", err)
	}
	if _, err := CheckResume(MIMEPDF, docx); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("mismatched content: err = %v, want ErrNotAllowed", err)
	}
}

func TestMimeTypeFromHTTP(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "Application/PDF; name=cv.pdf")
	if got := MimeTypeFromHTTP(h); got != MIMEPDF {
		t.Errorf("MimeTypeFromHTTP = %q, want %q", got, MIMEPDF)
	}
	if !Allowed(MIMEDOC) || Allowed("text/plain") {
		t.Error("Allowed mismatch")
	}
}
