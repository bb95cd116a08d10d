package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/kmx/internal/shared"
)

type formField struct {
	name  string
	value string
}

// Form is a multipart form body: plain fields plus files read from disk at encode time.
type Form struct {
	fields []formField
	files  []formField
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set appends a field. Repeated names are sent repeatedly.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name, value})
	return f
}

// AddFile attaches the file at path under the given field name.
func (f *Form) AddFile(name, path string) *Form {
	f.files = append(f.files, formField{name, path})
	return f
}

// Len returns the number of fields and files.
func (f *Form) Len() int {
	return len(f.fields) + len(f.files)
}

// Encode writes the multipart body and returns it with its content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", field.name, err)
		}
	}

	for _, file := range f.files {
		if err := attach(w, file.name, file.value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attach(w *multipart.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open form file: %w", err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy form file %s: %w", name, err)
	}
	return nil
}

// ParseForm builds a form from "name=value" field arguments and "name=path" file arguments.
func ParseForm(fields, files []string) (*Form, error) {
	form := NewForm()
	for _, arg := range fields {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: field %q must be name=value", shared.ErrInvalidFlag, arg)
		}
		form.Set(name, value)
	}
	for _, arg := range files {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("%w: file %q must be name=path", shared.ErrInvalidFlag, arg)
		}
		form.AddFile(name, path)
	}
	return form, nil
}
