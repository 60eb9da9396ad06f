package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/api/middleware"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

func asBuyer(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := middleware.WithIdentity(r.Context(), userID.String(), string(enums.UserRoleBuyer), string(enums.AccountStatusApproved))
	return r.WithContext(ctx)
}

func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code
}
