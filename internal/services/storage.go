package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedImageMimeTypes = []string{"image/jpeg", "image/png"}

// StorageService turns uploads into in-memory images. Nothing is written to disk.
type StorageService interface {
	ReadImage(file *multipart.FileHeader) (ImageInput, error)
}

type storageService struct {
	maxFileSize int64
}

func NewStorageService(maxFileSize int64) StorageService {
	return &storageService{
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) ReadImage(file *multipart.FileHeader) (ImageInput, error) {
	if file == nil {
		return ImageInput{}, &ValidationError{Field: "image", Message: "file is required"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return ImageInput{}, &ValidationError{Field: "image", Message: fmt.Sprintf("invalid file extension: %s", ext)}
	}

	if file.Size > s.maxFileSize {
		return ImageInput{}, &ValidationError{Field: "image", Message: fmt.Sprintf("file too large. Max size: %d bytes", s.maxFileSize)}
	}

	src, err := file.Open()
	if err != nil {
		return ImageInput{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxFileSize+1))
	if err != nil {
		return ImageInput{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return ImageInput{}, &ValidationError{Field: "image", Message: fmt.Sprintf("file too large. Max size: %d bytes", s.maxFileSize)}
	}
	if len(data) == 0 {
		return ImageInput{}, &ValidationError{Field: "image", Message: "file is empty"}
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageMimeTypes...) {
		return ImageInput{}, &ValidationError{Field: "image", Message: fmt.Sprintf("unsupported image content: %s", mtype.String())}
	}

	return ImageInput{Data: data, MimeType: mtype.String()}, nil
}
