package models

import (
	"mime/multipart"
)

// ConversionRequest is the parsed upload form for one POST.
type ConversionRequest struct {
	File      *multipart.FileHeader
	ColorMode string
}

// FileName returns the client supplied name, or "" when no file was sent.
func (r ConversionRequest) FileName() string {
	if r.File == nil {
		return ""
	}
	return r.File.Filename
}
