package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/platform"
	"github.com/storefront-console/internal/service"
)

func respondedStatusCode(t *testing.T, respond func(*gin.Context)) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respond(c)

	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestCatalogErrorMapping(t *testing.T) {
	// 未知商品/规格是 404，不是网关故障
	code, _ := respondedStatusCode(t, func(c *gin.Context) {
		respondCatalogError(c, service.ErrProductInvalid)
	})
	if code != response.CodeNotFound {
		t.Fatalf("unknown product: status_code want 404 got %d", code)
	}

	code, _ = respondedStatusCode(t, func(c *gin.Context) {
		respondCatalogError(c, service.ErrVariantNotFound)
	})
	if code != response.CodeNotFound {
		t.Fatalf("unknown variant: status_code want 404 got %d", code)
	}

	code, _ = respondedStatusCode(t, func(c *gin.Context) {
		respondCatalogError(c, fmt.Errorf("%w: connection refused", platform.ErrRequestFailed))
	})
	if code != response.CodeBadGateway {
		t.Fatalf("transport failure: status_code want 502 got %d", code)
	}

	code, msg := respondedStatusCode(t, func(c *gin.Context) {
		respondCatalogError(c, &platform.RemoteError{StatusCode: 422, Message: "store disabled"})
	})
	if code != response.CodeBadRequest || msg != "store disabled" {
		t.Fatalf("remote rejection: want 400 with backend message, got %d %q", code, msg)
	}
}

func TestOrderErrorMapping(t *testing.T) {
	code, _ := respondedStatusCode(t, func(c *gin.Context) {
		respondOrderError(c, service.ErrTransitionNotAllowed)
	})
	if code != response.CodeConflict {
		t.Fatalf("illegal transition: status_code want 409 got %d", code)
	}
}
