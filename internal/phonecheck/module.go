// Package phonecheck serves phone number validation and normalization over
// HTTP.
package phonecheck

import (
	apphttp "phonenumber_service/internal/http"
	"phonenumber_service/platform/validator"
)

// Module wires the phone HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(svc *Service, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(svc, val)}
}

func (m *Module) Name() string {
	return "phone"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/phone")
	group.POST("/validate", m.handler.Validate)
	group.POST("/normalize", m.handler.Normalize)
	group.GET("/constraints", m.handler.ListConstraints)
}

var _ apphttp.Module = (*Module)(nil)
