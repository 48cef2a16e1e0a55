package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
)

// FormBody is a multipart/form-data body. Fields keep their insertion order
// and may repeat. The content type, including the boundary, is produced by
// Encode, so requests carrying a FormBody drop any caller content-type.
type FormBody struct {
	fields []FormField
	files  []FileField
}

// FormField is a simple name/value form field.
type FormField struct {
	Name  string
	Value string
}

// FileField represents a file to upload in a multipart request.
type FileField struct {
	// FieldName is the form field name (e.g., "file", "avatar").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data for large files.
	Reader io.Reader
}

// NewFormBody creates an empty multipart form.
func NewFormBody() *FormBody {
	return &FormBody{}
}

// Append adds a field, keeping any existing fields with the same name.
func (f *FormBody) Append(name, value string) *FormBody {
	f.fields = append(f.fields, FormField{Name: name, Value: value})
	return f
}

// AddFile adds a file part.
func (f *FormBody) AddFile(file FileField) *FormBody {
	f.files = append(f.files, file)
	return f
}

// Get returns the first value of the named field, or "" if absent.
func (f *FormBody) Get(name string) string {
	for _, field := range f.fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Values returns every value of the named field in insertion order.
func (f *FormBody) Values(name string) []string {
	var values []string
	for _, field := range f.fields {
		if field.Name == name {
			values = append(values, field.Value)
		}
	}
	return values
}

// Fields returns a copy of the simple fields in insertion order.
func (f *FormBody) Fields() []FormField {
	return append([]FormField(nil), f.fields...)
}

// Files returns a copy of the file parts.
func (f *FormBody) Files() []FileField {
	return append([]FileField(nil), f.files...)
}

// Encode builds the multipart body and returns the reader and content-type header.
func (f *FormBody) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", err
		}
	}

	for _, file := range f.files {
		var part io.Writer
		var err error

		if file.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(file.FieldName)+`"; filename="`+escapeQuotes(file.FileName)+`"`)
			header.Set("Content-Type", file.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(file.FieldName, file.FileName)
		}
		if err != nil {
			return nil, "", err
		}

		if file.Data != nil {
			if _, err := part.Write(file.Data); err != nil {
				return nil, "", err
			}
		} else if file.Reader != nil {
			if _, err := io.Copy(part, file.Reader); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
