package sink

import "github.com/gabriel-vasile/mimetype"

// ContentType sniffs the MIME type of a rendered artifact.
func ContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
