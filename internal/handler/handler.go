// Package handler decodes HTTP requests, delegates to the service layer, and
// writes enveloped responses. Nothing here touches storage directly.
package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"streamhub-server/internal/query"
	"streamhub-server/internal/service"

	"github.com/google/uuid"
)

// upload wraps one multipart file so handlers can pass it to the service
// layer and still close it when the request ends.
type upload struct {
	reader   multipart.File
	filename string
}

func formUpload(r *http.Request, field string) (*upload, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	return &upload{reader: f, filename: header.Filename}, nil
}

func (u *upload) file() *service.UploadFile {
	if u == nil {
		return nil
	}
	return &service.UploadFile{Name: u.filename, Reader: u.reader}
}

func (u *upload) close() {
	if u != nil {
		u.reader.Close()
	}
}

// saveTempFile spools a multipart upload to disk so tools that need a real
// path (the duration prober) can read it. The caller removes it via cleanup.
func saveTempFile(r *http.Request, field string) (string, func(), error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	path := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", nil, err
	}

	if _, err := io.Copy(dst, f); err != nil {
		dst.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}

	return path, func() { os.Remove(path) }, nil
}

func listParams(r *http.Request) query.Params {
	return query.ParseParams(r.URL.Query())
}
