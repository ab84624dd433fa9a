package storage

import (
	"mime"
	"strings"
)

// DefaultExtension is used when the uploaded filename carries no extension.
const DefaultExtension = ".png"

// ImagePath is the URL path under which stored images are served.
const ImagePath = "/recipes/image/"

// Extension returns the part of original from its last "." (inclusive), or
// DefaultExtension when original has no ".".
func Extension(original string) string {
	i := strings.LastIndex(original, ".")
	if i < 0 {
		return DefaultExtension
	}
	return "." + original[i+1:]
}

// FilenameFor derives the stored filename of a recipe image.
func FilenameFor(id, original string) string {
	return id + Extension(original)
}

// URLFor builds the public URL of a stored image.
func URLFor(baseURL, filename string) string {
	return strings.TrimRight(baseURL, "/") + ImagePath + filename
}

// FilenameFromURL returns the trailing path segment of an image URL.
func FilenameFromURL(imageURL string) string {
	return imageURL[strings.LastIndex(imageURL, "/")+1:]
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ContentType guesses the MIME type of a stored image from its extension.
func ContentType(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return "application/octet-stream"
	}
	ext := strings.ToLower(filename[i:])
	if ct, ok := imageTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
