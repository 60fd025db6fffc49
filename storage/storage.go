// Package storage is the blob-store collaborator: it keeps uploaded files on
// local disk and hands back relative path handles.
package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed upload extensions
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MaxUploadSize caps uploads at 5 MiB, matching the API contract.
const MaxUploadSize = 5 << 20

var ErrNotAnImage = errors.New("uploaded file is not an image")
var ErrTooLarge = errors.New("uploaded file exceeds the size limit")

// Disk stores blobs under a root directory.
type Disk struct {
	root string
}

func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

// Store saves the upload under dir and returns its relative path handle.
func (d *Disk) Store(file *multipart.FileHeader, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", ErrNotAnImage
	}
	if file.Size > MaxUploadSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(filepath.Join(d.root, dir), 0o755); err != nil {
		return "", err
	}

	handle := filepath.Join(dir, uuid.NewString()+ext)
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.root, handle))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		os.Remove(filepath.Join(d.root, handle))
		return "", err
	}
	return handle, nil
}

// Delete removes a stored blob. A missing file is not an error.
func (d *Disk) Delete(handle string) error {
	if handle == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.root, handle))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", handle, err)
	}
	return nil
}
