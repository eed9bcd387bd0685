package config

type UploadConfig struct {
	AllowedMimeTypes  []string
	AllowedExtensions []string
	MaxSizeMB         int64
	PathPrefix        string
}

// xlsx files are zip containers, so sniffing reports application/zip for most of them.
var spreadsheetMimeTypes = []string{
	"application/zip",
	"application/octet-stream",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var UploadContexts = map[string]UploadConfig{
	"profile_photo": {
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		MaxSizeMB:         5,
		PathPrefix:        "avatars",
	},
	"employee_import": {
		AllowedMimeTypes:  spreadsheetMimeTypes,
		AllowedExtensions: []string{".xlsx"},
		MaxSizeMB:         20,
	},
	"intercom_import": {
		AllowedMimeTypes:  spreadsheetMimeTypes,
		AllowedExtensions: []string{".xlsx"},
		MaxSizeMB:         20,
	},
}
