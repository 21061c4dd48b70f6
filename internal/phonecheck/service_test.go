package phonecheck

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonenumber_service/internal/constraints"
	apphttp "phonenumber_service/internal/http"
	"phonenumber_service/platform/apperr"
	"phonenumber_service/platform/phone"
	"phonenumber_service/platform/validator"
)

func newUnlabeledService(t *testing.T) *Service {
	t.Helper()

	registry := constraints.NewRegistry()
	require.NoError(t, registry.Add("uk_mobile", phone.NewConstraint(phone.WithTypes(phone.Mobile))))
	require.NoError(t, registry.Add("odd", phone.NewConstraint(phone.WithTypes("satellite"))))

	engine := phone.NewEngine()
	return NewService(Deps{
		Engine:    engine,
		Validator: phone.NewConstraintValidator(engine, nil),
		Codec:     phone.NewCodec(engine),
		Registry:  registry,
	})
}

func TestConstraintsRejectsUnlabeledType(t *testing.T) {
	svc := newUnlabeledService(t)

	var (
		summaries []ConstraintSummary
		err       error
	)
	assert.NotPanics(t, func() { summaries, err = svc.Constraints() })
	require.Error(t, err)
	assert.Nil(t, summaries)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
	assert.Equal(t, "phonecheck.Constraints", appErr.Op)
}

func TestListConstraintsUnlabeledType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newUnlabeledService(t)

	router := gin.New()
	module := NewModule(svc, validator.New(phone.NewConstraintValidator(phone.NewEngine(), nil)))
	module.RegisterRoutes(&apphttp.RouterContext{Engine: router, V1: router.Group("/api/v1")})

	var status int
	assert.NotPanics(t, func() {
		status = doJSON(t, router, http.MethodGet, "/api/v1/phone/constraints", nil).Code
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
