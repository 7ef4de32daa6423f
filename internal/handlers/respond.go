package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/finbook/bookkeeper/internal/model"
	"github.com/finbook/bookkeeper/internal/repository"
	xhttp "github.com/finbook/bookkeeper/pkg/http"
	"github.com/finbook/bookkeeper/pkg/logger"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func writeFieldErrors(ctx *xhttp.RequestCtx, ve *model.ValidationError) {
	writeJSON(ctx, 400, map[string]any{"errors": ve.FieldMap()})
}

// handleError maps domain failures onto the API error contract. Anything
// unrecognized is a 500 and gets logged.
func handleError(ctx *xhttp.RequestCtx, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeFieldErrors(ctx, ve)
	case errors.Is(err, repository.ErrCustomerNotFound):
		writeError(ctx, 404, "Customer not found.")
	case errors.Is(err, repository.ErrEntryNotFound):
		writeError(ctx, 404, "Not found.")
	default:
		logger.Error("request failed", "error", err)
		writeError(ctx, 500, "Internal server error.")
	}
}

func pathID(ctx *xhttp.RequestCtx, name string) (int64, bool) {
	s, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// flexString decodes either a JSON string or a bare JSON number, so
// clients may send "100.50" or 100.50 for amounts.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}
