package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "precheck/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})
}

type sampleRequest struct {
	URN   string `json:"urn" validate:"required,max=20"`
	Count int    `json:"count" validate:"gte=0"`
}

func (r *sampleRequest) Validate() error {
	if r.URN == "REJECT" {
		return dErrors.New(dErrors.CodeBadRequest, "urn rejected")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	decode := func(body string) (*sampleRequest, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req, _ := DecodeAndPrepare[sampleRequest](w, r, nil, r.Context(), "req-1")
		return req, w
	}

	t.Run("valid body", func(t *testing.T) {
		req, w := decode(`{"urn":"TFL4359536","count":2}`)
		if req == nil {
			t.Fatalf("expected request, got status %d", w.Code)
		}
		if req.URN != "TFL4359536" || req.Count != 2 {
			t.Fatalf("unexpected request %+v", req)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req, w := decode(`{"urn":`)
		if req != nil || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("tag failure names the json field", func(t *testing.T) {
		req, w := decode(`{"count":1}`)
		if req != nil || w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !strings.Contains(body["error_description"], "urn") {
			t.Fatalf("expected urn in description, got %q", body["error_description"])
		}
	})

	t.Run("request validate runs after tags", func(t *testing.T) {
		req, w := decode(`{"urn":"REJECT"}`)
		if req != nil || w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(dErrors.CodeUnavailable); got != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", got)
	}
	if got := StatusFor(dErrors.CodeValidation); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", got)
	}
}
