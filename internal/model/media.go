package model

import "errors"

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypeJPG  = "image/jpg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

// imageExtensions maps every accepted content type to the extension used for
// the stored file.
var imageExtensions = map[string]string{
	ContentTypeJPEG: "jpg",
	ContentTypeJPG:  "jpg",
	ContentTypePNG:  "png",
	ContentTypeGIF:  "gif",
	ContentTypeWebP: "webp",
}

// imageFormats maps accepted content types to the format name reported by
// the image decoders.
var imageFormats = map[string]string{
	ContentTypeJPEG: "jpeg",
	ContentTypeJPG:  "jpeg",
	ContentTypePNG:  "png",
	ContentTypeGIF:  "gif",
	ContentTypeWebP: "webp",
}

// MaxImagePixels caps width*height of an upload so decoding stays bounded in memory.
const MaxImagePixels = 50_000_000

// Error codes for HTTP responses
const (
	CodeImageTooLarge   = "IMAGE_TOO_LARGE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeInvalidFileType = "INVALID_FILE_TYPE"
	CodeTooManyFiles    = "TOO_MANY_FILES"
)

// Domain errors for upload validation
var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrImageTooLarge   = errors.New("image dimensions too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrTooManyFiles    = errors.New("too many files")
)

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := imageExtensions[contentType]
	return ok
}

// ImageExtension returns the file extension for an accepted content type.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}

// ImageFormat returns the decoder format name expected for a content type.
func ImageFormat(contentType string) (string, bool) {
	format, ok := imageFormats[contentType]
	return format, ok
}
