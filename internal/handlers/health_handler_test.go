package handlers

import (
	"errors"
	"testing"

	xhttp "github.com/finbook/bookkeeper/pkg/http"
	"github.com/stretchr/testify/assert"
)

type stubHealthService struct {
	err error
}

func (s stubHealthService) Get() error { return s.err }

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(stubHealthService{})
		ctx := &xhttp.RequestCtx{}

		h.GetHealth(ctx)
		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "success", string(ctx.Response.Body()))
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(stubHealthService{err: errors.New("connection refused")})
		ctx := &xhttp.RequestCtx{}

		h.GetHealth(ctx)
		assert.Equal(t, 500, ctx.Response.StatusCode())
		assert.Equal(t, "unhealthy", string(ctx.Response.Body()))
	})
}
