package phonecheck

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonenumber_service/internal/constraints"
	apphttp "phonenumber_service/internal/http"
	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/metrics"
	"phonenumber_service/platform/phone"
	"phonenumber_service/platform/validator"
)

const testSchema = `
constraints:
  uk_mobile:
    type: mobile
    defaultRegion: GB
  toll_free:
    type: toll_free
    format: e164
`

func newTestRouter(t *testing.T, cache NormalizeCache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	engine := phone.NewEngine()
	cv := phone.NewConstraintValidator(engine, log)

	registry, err := constraints.Parse([]byte(testSchema), log)
	require.NoError(t, err)

	svc := NewService(Deps{
		Engine:    engine,
		Validator: cv,
		Codec:     phone.NewCodec(engine, phone.WithCodecRegion("GB")),
		Registry:  registry,
		Cache:     cache,
		Metrics:   metrics.NewPhoneMetrics(prometheus.NewRegistry()),
		Log:       log,
	})

	router := gin.New()
	module := NewModule(svc, validator.New(cv))
	module.RegisterRoutes(&apphttp.RouterContext{Engine: router, V1: router.Group("/api/v1")})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestValidateNamedConstraint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value":      "07400 123456",
		"constraint": "uk_mobile",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Code)
}

func TestValidateRejectedValue(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value":      "+447400123456",
		"constraint": "toll_free",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, phone.ErrorCode, resp.Code)
	assert.Equal(t, "This value is not a valid toll-free number.", resp.Message)
}

func TestValidateAdhocWithContextRegion(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value":      "07400123456",
		"types":      []string{"fixed_line", "mobile"},
		"regionPath": "address.country",
		"message":    "<b>Invalid</b> {{ type }}",
		"context":    map[string]any{"address": map[string]any{"country": "GB"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value":   "+18002530000",
		"types":   []string{"fixed_line", "mobile"},
		"message": "<b>Invalid</b> {{ type }}",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "Invalid fixed-line number, mobile number", resp.Message)
}

func TestValidateUnknownConstraint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value":      "+447400123456",
		"constraint": "nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateRejectsBadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/validate", map[string]any{
		"value": "+447400123456",
		"types": []string{"satellite"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/phone/validate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	malformed := httptest.NewRecorder()
	router.ServeHTTP(malformed, req)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
}

func TestNormalize(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/normalize", map[string]any{
		"value":  "020 7031 3000",
		"format": "international",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Number)
	assert.Equal(t, "+44 20 7031 3000", *resp.Number)
	assert.Equal(t, "fixed_line", resp.Type)
	assert.Equal(t, "GB", resp.Region)
	assert.True(t, resp.Valid)
}

func TestNormalizeEmptyValue(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/normalize", map[string]any{"value": "  "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"number":null,"valid":false}`, rec.Body.String())
}

func TestNormalizeDecodeError(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/phone/normalize", map[string]any{
		"value":  "07400123456",
		"region": "ZZ",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, phone.ErrorCode, resp.Code)
	assert.Equal(t, "INVALID_COUNTRY_CODE", resp.Details["engineCode"])
}

func TestListConstraints(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/phone/constraints", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ConstraintSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "uk_mobile", resp[0].Name)
	assert.Equal(t, []string{"mobile"}, resp[0].Types)
	assert.Equal(t, "GB", resp[0].DefaultRegion)
	assert.Equal(t, "e164", resp[1].Format)
	assert.Equal(t, "This value is not a valid toll-free number.", resp[1].Message)
}
