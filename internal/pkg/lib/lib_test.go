package lib

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestToStr(t *testing.T) {
	payload, err := ToStr(`{ "lat" : 6.9,  "lon": 79.8 }`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(string(payload), " ") {
		t.Errorf("expected compact json, got %s", payload)
	}

	raw := "not json"
	payload, err = ToStr(raw)
	if err == nil {
		t.Fatalf("expected an error for invalid json")
	}
	if string(payload) != raw {
		t.Errorf("expected the raw payload back, got %s", payload)
	}
}

func TestBase64URLDecode(t *testing.T) {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(`{"type":"service_account"}`))
	decoded, err := Base64URLDecode(encoded)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(decoded) != `{"type":"service_account"}` {
		t.Errorf("unexpected payload %s", decoded)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusBadRequest, "nope")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), `"message":"nope"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}
