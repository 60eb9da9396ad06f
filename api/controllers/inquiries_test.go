package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/internal/inquiries"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	"github.com/greenacres/greenacres-backend/pkg/pagination"
)

type stubInquiryService struct {
	submitFn       func(ctx context.Context, userID uuid.UUID, input inquiries.SubmitInput) (*inquiries.InquiryDTO, error)
	listMineFn     func(ctx context.Context, userID uuid.UUID, params pagination.Params) (*inquiries.ListResponse, error)
	listAllFn      func(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) (*inquiries.ListResponse, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, input inquiries.UpdateStatusInput) (*inquiries.InquiryDTO, error)
}

func (s stubInquiryService) Submit(ctx context.Context, userID uuid.UUID, input inquiries.SubmitInput) (*inquiries.InquiryDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, userID, input)
	}
	return &inquiries.InquiryDTO{}, nil
}

func (s stubInquiryService) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*inquiries.ListResponse, error) {
	if s.listMineFn != nil {
		return s.listMineFn(ctx, userID, params)
	}
	return &inquiries.ListResponse{Inquiries: []inquiries.InquiryDTO{}}, nil
}

func (s stubInquiryService) ListAll(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) (*inquiries.ListResponse, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, status, params)
	}
	return &inquiries.ListResponse{Inquiries: []inquiries.InquiryDTO{}}, nil
}

func (s stubInquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, input inquiries.UpdateStatusInput) (*inquiries.InquiryDTO, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, input)
	}
	return &inquiries.InquiryDTO{}, nil
}

func TestInquirySubmitReturnsCreated(t *testing.T) {
	userID := uuid.New()
	inquiryID := uuid.New()

	svc := stubInquiryService{
		submitFn: func(ctx context.Context, gotUser uuid.UUID, input inquiries.SubmitInput) (*inquiries.InquiryDTO, error) {
			if gotUser != userID {
				t.Fatalf("unexpected user %s", gotUser)
			}
			if input.Message == nil || *input.Message != "please quote freight" {
				t.Fatalf("unexpected message %+v", input.Message)
			}
			return &inquiries.InquiryDTO{ID: inquiryID, UserID: gotUser, Status: enums.InquiryStatusNew}, nil
		},
	}

	body := `{"message":"please quote freight"}`
	req := asBuyer(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), userID)
	resp := httptest.NewRecorder()
	InquirySubmit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data inquiries.InquiryDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != inquiryID || envelope.Data.Status != enums.InquiryStatusNew {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestInquirySubmitSanitizesMessage(t *testing.T) {
	var got inquiries.SubmitInput
	svc := stubInquiryService{
		submitFn: func(ctx context.Context, userID uuid.UUID, input inquiries.SubmitInput) (*inquiries.InquiryDTO, error) {
			got = input
			return &inquiries.InquiryDTO{}, nil
		},
	}

	body := `{"message":"  please quote freight  "}`
	req := asBuyer(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	InquirySubmit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Message == nil || *got.Message != "please quote freight" {
		t.Fatalf("unexpected message %+v", got.Message)
	}
}

func TestInquiryListMinePassesPageParams(t *testing.T) {
	svc := stubInquiryService{
		listMineFn: func(ctx context.Context, userID uuid.UUID, params pagination.Params) (*inquiries.ListResponse, error) {
			if params.Limit != 10 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			if params.Cursor != "abc" {
				t.Fatalf("unexpected cursor %q", params.Cursor)
			}
			return &inquiries.ListResponse{Inquiries: []inquiries.InquiryDTO{}}, nil
		},
	}

	req := asBuyer(httptest.NewRequest(http.MethodGet, "/?limit=10&cursor=abc", nil), uuid.New())
	resp := httptest.NewRecorder()
	InquiryListMine(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminInquiriesStatusFilter(t *testing.T) {
	var got *enums.InquiryStatus
	svc := stubInquiryService{
		listAllFn: func(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) (*inquiries.ListResponse, error) {
			got = status
			return &inquiries.ListResponse{Inquiries: []inquiries.InquiryDTO{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?status=reviewed", nil)
	resp := httptest.NewRecorder()
	AdminInquiries(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got == nil || *got != enums.InquiryStatusReviewed {
		t.Fatalf("unexpected status filter %+v", got)
	}
}

func TestAdminInquiriesRejectsUnknownStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?status=archived", nil)
	resp := httptest.NewRecorder()
	AdminInquiries(stubInquiryService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %s", code)
	}
}

func TestAdminInquiryStatusRoutesID(t *testing.T) {
	inquiryID := uuid.New()
	svc := stubInquiryService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, input inquiries.UpdateStatusInput) (*inquiries.InquiryDTO, error) {
			if id != inquiryID {
				t.Fatalf("unexpected id %s", id)
			}
			if input.Status != enums.InquiryStatusReviewed {
				t.Fatalf("unexpected status %s", input.Status)
			}
			return &inquiries.InquiryDTO{ID: id, Status: enums.InquiryStatusReviewed}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"reviewed"}`))
	req = withPathParam(req, "inquiryId", inquiryID.String())
	resp := httptest.NewRecorder()
	AdminInquiryStatus(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
