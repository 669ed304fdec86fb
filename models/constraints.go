package models

// Upload constraints shared by the validators, handlers and the CLI.
const (
	DefaultInputExtension = ".jpg"
	OutputExtension       = ".svg"
	DownloadFileName      = "converted.svg"
	MaxFileSizeBytes      = 10 << 20 // 10 MiB
)

// AllowedExtensions lists the accepted upload extensions, lower case.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
