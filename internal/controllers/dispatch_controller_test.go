package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Validation paths below all reject before any store access, so the handlers
// are exercised without a database.

func newDispatchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/dispatch", Dispatch)
	return r
}

func postDispatch(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/dispatch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorField(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	msg, _ := resp["error"].(string)
	return msg
}

func TestDispatchInvalidAction(t *testing.T) {
	r := newDispatchRouter()

	for _, body := range []string{`{}`, `{"action":"make_coffee"}`, `{"action":""}`} {
		w := postDispatch(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status %d, want 400", body, w.Code)
		}
		if msg := errorField(t, w); msg != "Invalid action" {
			t.Fatalf("body %s: error %q, want \"Invalid action\"", body, msg)
		}
	}
}

func TestDispatchMalformedBody(t *testing.T) {
	r := newDispatchRouter()

	w := postDispatch(t, r, `{"action":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if errorField(t, w) == "" {
		t.Fatal("expected an error message for malformed JSON")
	}
}

func TestFindNearestDriversRequiresOrigin(t *testing.T) {
	r := newDispatchRouter()

	cases := []string{
		`{"action":"find_nearest_drivers"}`,
		`{"action":"find_nearest_drivers","restaurant_lat":14.6}`,
		`{"action":"find_nearest_drivers","restaurant_lng":121.0}`,
	}
	for _, body := range cases {
		w := postDispatch(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status %d, want 400", body, w.Code)
		}
	}
}

func TestAutoAssignRequiresOrderID(t *testing.T) {
	r := newDispatchRouter()

	w := postDispatch(t, r, `{"action":"auto_assign"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if msg := errorField(t, w); !strings.Contains(msg, "order_id") {
		t.Fatalf("error %q should mention order_id", msg)
	}
}

func TestCalculateDeliveryFeeValidation(t *testing.T) {
	r := newDispatchRouter()

	cases := []string{
		`{"action":"calculate_delivery_fee"}`,
		`{"action":"calculate_delivery_fee","distance_km":-2,"city_id":1}`,
		`{"action":"calculate_delivery_fee","distance_km":5}`,
	}
	for _, body := range cases {
		w := postDispatch(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status %d, want 400", body, w.Code)
		}
	}
}
