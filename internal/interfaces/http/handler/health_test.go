package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kizora/invoicer/internal/interfaces/http/dto"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func TestHealthHandler_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(fakePinger{}, "1.2.3", nil)
		c, w := newTestContext()

		h.Check(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body HealthResponse
		decodeData(t, w, &body)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "connected", body.Database)
		assert.Equal(t, "1.2.3", body.Version)
		assert.NotEmpty(t, body.GoVersion)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(fakePinger{err: errors.New("connection refused")}, "1.2.3", nil)
		c, w := newTestContext()

		h.Check(c)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, resp.Error.Code)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "disconnected", data["database"])
	})
}
