package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"message": "created"})

	if got := w.Code; got != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type but got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "created" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWriteErrorExposesClientMessages(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "Product IDs not found: 999"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Product IDs not found: 999",
		},
		{
			name:       "not found",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found"),
			wantStatus: http.StatusNotFound,
			wantError:  "invoice not found",
		},
		{
			name:       "conflict",
			err:        pkgerrors.New(pkgerrors.CodeConflict, "invoice number contention, please retry"),
			wantStatus: http.StatusConflict,
			wantError:  "invoice number contention, please retry",
		},
		{
			name:       "internal hides details",
			err:        pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: relation missing"), "creating invoice"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
		{
			name:       "untyped treated as internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, tc.err)

			if got := w.Code; got != tc.wantStatus {
				t.Fatalf("expected status %d but got %d", tc.wantStatus, got)
			}

			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tc.wantError {
				t.Fatalf("expected error %q but got %q", tc.wantError, body.Error)
			}
		})
	}
}

func TestWriteErrorNilError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, nil)

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}
}
