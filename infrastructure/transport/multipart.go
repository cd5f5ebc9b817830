package transport

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"

	pkgerrors "sayitloud/pkg/errors"
)

// FilePart is a single binary attachment within a multipart body.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// MultipartBody is a set of named text parts plus at most one binary file.
type MultipartBody struct {
	Fields map[string]string
	File   *FilePart
}

// NewMultipartBody creates a multipart body with the given text fields.
func NewMultipartBody(fields map[string]string) *MultipartBody {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &MultipartBody{Fields: fields}
}

// WithFile attaches the single binary file part.
func (m *MultipartBody) WithFile(fieldName, fileName, contentType string, r io.Reader) *MultipartBody {
	m.File = &FilePart{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: contentType,
		Reader:      r,
	}
	return m
}

// encode serializes the body, returning the bytes and the Content-Type
// header value carrying the generated boundary.
func (m *MultipartBody) encode() ([]byte, string, error) {
	if m.File != nil {
		if m.File.FieldName == "" || m.File.Reader == nil {
			return nil, "", pkgerrors.NewValidationError("file attachment must have a field name and content")
		}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// deterministic field order keeps request bytes reproducible in tests
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, m.Fields[name]); err != nil {
			return nil, "", pkgerrors.NewInternalError("writing multipart field").WithCause(err)
		}
	}

	if m.File != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(m.File.FieldName)+`"; filename="`+escapeQuotes(m.File.FileName)+`"`)
		if m.File.ContentType != "" {
			header.Set("Content-Type", m.File.ContentType)
		} else {
			header.Set("Content-Type", "application/octet-stream")
		}

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", pkgerrors.NewInternalError("creating multipart file part").WithCause(err)
		}
		if _, err := io.Copy(part, m.File.Reader); err != nil {
			return nil, "", pkgerrors.NewInternalError("copying multipart file content").WithCause(err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", pkgerrors.NewInternalError("finalizing multipart body").WithCause(err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
