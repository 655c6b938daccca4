package sniffer

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
)

type DocType string

const (
	TypePDF  DocType = "pdf"
	TypeDOC  DocType = "doc"
	TypeDOCX DocType = "docx"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnknownType = errors.New("unknown document type")
	ErrNotAllowed  = errors.New("resume type not allowed")
)

// NotAllowedMessage is shown to the visitor when CheckResume fails.
const NotAllowedMessage = "Only PDF and DOC files are allowed"

type Result struct {
	Type DocType
	MIME string
}

var allowed = map[string]DocType{
	MIMEPDF:  TypePDF,
	MIMEDOC:  TypeDOC,
	MIMEDOCX: TypeDOCX,
}

// Allowed reports whether a declared content type is an accepted resume type.
func Allowed(mime string) bool {
	_, ok := allowed[normalize(mime)]
	return ok
}

func Detect(r io.Reader) (Result, []byte, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Result{}, nil, err
	}
	head = head[:n]

	result, err := DetectHead(head)
	return result, head, err
}

func DetectHead(head []byte) (Result, error) {
	if len(head) == 0 {
		return Result{}, ErrUnknownType
	}

	if isPDF(head) {
		return Result{Type: TypePDF, MIME: MIMEPDF}, nil
	}
	if isOLE(head) {
		return Result{Type: TypeDOC, MIME: MIMEDOC}, nil
	}
	if isZip(head) {
		return Result{Type: TypeDOCX, MIME: MIMEDOCX}, nil
	}

	return Result{}, ErrUnknownType
}

// CheckResume validates an uploaded resume: the declared type must be
// accepted and the content must look like the same family of document.
func CheckResume(declared string, data []byte) (Result, error) {
	want, ok := allowed[normalize(declared)]
	if !ok {
		return Result{}, ErrNotAllowed
	}
	got, err := DetectHead(head(data))
	if err != nil {
		return Result{}, ErrNotAllowed
	}
	if got.Type != want {
		return Result{}, ErrNotAllowed
	}
	return got, nil
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}

func isPDF(head []byte) bool {
	return bytes.HasPrefix(head, []byte("%PDF-"))
}

// Word 97-2003 documents are OLE compound files.
func isOLE(head []byte) bool {
	return bytes.HasPrefix(head, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1})
}

func isZip(head []byte) bool {
	return bytes.HasPrefix(head, []byte{'P', 'K', 0x03, 0x04})
}

func normalize(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func MimeTypeFromHTTP(header http.Header) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return ""
	}
	return normalize(contentType)
}
