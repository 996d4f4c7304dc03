package mime

import "path/filepath"

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JavaScript  MIME = "application/javascript"
	PNG         MIME = "image/png"
	JPEG        MIME = "image/jpeg"
	GIF         MIME = "image/gif"
)

var Extension = map[string]MIME{
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".js":   JavaScript,
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
}

// ByPath guesses the MIME by the file extension. Lookup is case-sensitive,
// unknown extensions result in OctetStream.
func ByPath(path string) MIME {
	if m, found := Extension[filepath.Ext(path)]; found {
		return m
	}

	return OctetStream
}
