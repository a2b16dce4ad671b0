package handler

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"token", "Invoice-INVOICE-ACME-MAR25.html"},
		{"space and quote", `Invoice-Q1 "final".html`},
		{"non-ascii", "Invoice-RÉCHNUNG-Ä1.html"},
		{"backslash", `Invoice-a\b.html`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := attachmentDisposition(tt.filename)

			disposition, params, err := mime.ParseMediaType(header)
			require.NoError(t, err, header)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, tt.filename, params["filename"], header)
		})
	}

	t.Run("non-ascii uses the extended form", func(t *testing.T) {
		assert.Contains(t, attachmentDisposition("Invoice-Ä.html"), "filename*=utf-8''")
	})
}
