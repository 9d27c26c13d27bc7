package handlers_test

import (
	"net/http"
	"testing"

	"github.com/giftlinkhq/giftlink/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindProbe struct {
	Email string `json:"email" binding:"required,email"`
	Count int    `json:"count"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/probe", func(ctx *gin.Context) {
		var req bindProbe

		if !handlers.BindJSON(ctx, &req) {
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestBindJSONValidatorViolations(t *testing.T) {
	r := bindRouter()

	w := doJSON(t, r, http.MethodPost, "/probe", `{"email":"nope"}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	errObj := body["error"].(map[string]any)

	if errObj["code"] != "invalid_request" {
		t.Errorf("code = %v", errObj["code"])
	}

	details := errObj["details"].(map[string]any)
	fields, ok := details["fields"].([]any)

	if !ok || len(fields) != 1 {
		t.Fatalf("details = %v, want one field violation", details)
	}

	field := fields[0].(map[string]any)

	// violations are reported under the json name, not the Go name
	if field["field"] != "email" || field["rule"] != "email" {
		t.Errorf("violation = %v", field)
	}
}

func TestBindJSONSyntaxError(t *testing.T) {
	r := bindRouter()

	w := doJSON(t, r, http.MethodPost, "/probe", `{"email": `, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	details := body["error"].(map[string]any)["details"].(map[string]any)

	if details["json"] != "invalid_json_syntax" {
		t.Errorf("details = %v", details)
	}
}

func TestBindJSONTypeMismatch(t *testing.T) {
	r := bindRouter()

	w := doJSON(t, r, http.MethodPost, "/probe", `{"email":"a@x.com","count":"three"}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decodeBody(t, w)
	details := body["error"].(map[string]any)["details"].(map[string]any)

	if details["json"] != "invalid_json_type" {
		t.Errorf("details = %v", details)
	}
}
