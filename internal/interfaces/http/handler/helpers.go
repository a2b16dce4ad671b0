package handler

import (
	"mime"

	"github.com/google/uuid"
)

// parseUUID parses an id already checked by a binding uuid tag
func parseUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

// attachmentDisposition builds a Content-Disposition value for a download.
// Non-ASCII names are sent in the RFC 2231 extended form.
func attachmentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
