// Package formx decodes fully buffered multipart/form-data bodies.
//
// Parsing never fails: a body that cannot be decoded yields whatever parts
// were read before the problem, possibly none.
package formx

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

// Field is a plain form value.
type Field struct {
	Name  string
	Value string
}

// File is a part that carried a filename.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Form holds the decoded parts keyed by form name. A repeated field keeps
// its last value; repeated files are kept in order.
type Form struct {
	Fields map[string]Field
	Files  map[string][]File
}

// Value returns the named field value, or "" when absent.
func (f *Form) Value(name string) string {
	return f.Fields[name].Value
}

// FileCount is the number of file parts across all names.
func (f *Form) FileCount() int {
	n := 0
	for _, files := range f.Files {
		n += len(files)
	}
	return n
}

// Boundary returns the boundary parameter of contentType, or "" if there is
// none. Headers that mime cannot parse still yield the raw boundary= value.
func Boundary(contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b
		}
	}
	return rawBoundary(contentType)
}

func rawBoundary(contentType string) string {
	i := strings.Index(strings.ToLower(contentType), "boundary=")
	if i < 0 {
		return ""
	}
	v := contentType[i+len("boundary="):]
	if j := strings.IndexByte(v, ';'); j >= 0 {
		v = v[:j]
	}
	return strings.Trim(strings.TrimSpace(v), `"`)
}

// Parse decodes body using the boundary declared in contentType.
func Parse(body []byte, contentType string) *Form {
	form := &Form{
		Fields: make(map[string]Field),
		Files:  make(map[string][]File),
	}

	boundary := Boundary(contentType)
	if boundary == "" {
		return form
	}

	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return form
		}

		// A body cut off before the closing delimiter ends the last part
		// with io.ErrUnexpectedEOF; what was read still counts.
		data, err := io.ReadAll(part)
		truncated := errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !truncated {
			_ = part.Close()
			return form
		}
		form.add(part, data)
		_ = part.Close()
		if truncated {
			return form
		}
	}
}

func (f *Form) add(part *multipart.Part, data []byte) {
	name := part.FormName()
	if name == "" {
		return
	}

	if filename := part.FileName(); filename != "" {
		f.Files[name] = append(f.Files[name], File{
			Field:       name,
			Filename:    filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
		return
	}

	f.Fields[name] = Field{
		Name:  name,
		Value: strings.TrimRight(string(data), " \t\r\n"),
	}
}
