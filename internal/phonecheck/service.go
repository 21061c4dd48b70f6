package phonecheck

import (
	"context"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"phonenumber_service/internal/constraints"
	"phonenumber_service/platform/apperr"
	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/metrics"
	"phonenumber_service/platform/phone"
	"phonenumber_service/platform/sanitize"
)

// Service validates and normalizes phone numbers.
type Service struct {
	engine    phone.Engine
	validator *phone.ConstraintValidator
	codec     *phone.Codec
	registry  *constraints.Registry
	cache     NormalizeCache
	metrics   *metrics.PhoneMetrics
	log       *logger.Logger
}

// Deps holds everything the service needs. Cache and Metrics are optional.
type Deps struct {
	Engine    phone.Engine
	Validator *phone.ConstraintValidator
	Codec     *phone.Codec
	Registry  *constraints.Registry
	Cache     NormalizeCache
	Metrics   *metrics.PhoneMetrics
	Log       *logger.Logger
}

func NewService(deps Deps) *Service {
	registry := deps.Registry
	if registry == nil {
		registry = constraints.NewRegistry()
	}
	log := deps.Log
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		engine:    deps.Engine,
		validator: deps.Validator,
		codec:     deps.Codec,
		registry:  registry,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		log:       log,
	}
}

// Validate checks req.Value. A rejected value is a normal result, not an
// error; errors are reserved for bad constraints and unknown names.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResponse, error) {
	c, err := s.constraintFor(req)
	if err != nil {
		return ValidateResponse{}, err
	}

	violation, err := s.validator.Validate(req.Value, c, req.Context)
	if err != nil {
		return ValidateResponse{}, apperr.FromPhone(err).WithOp("phonecheck.Validate")
	}

	s.metrics.ObserveValidation(c.Name(), violation == nil)
	if violation == nil {
		return ValidateResponse{Valid: true}, nil
	}

	s.log.WithContext(ctx).Debug("phone value rejected", "constraint", c.Name(), "cause", string(violation.Cause))
	return ValidateResponse{
		Valid:   false,
		Code:    violation.Code,
		Message: violation.Render(),
	}, nil
}

func (s *Service) constraintFor(req ValidateRequest) (phone.Constraint, error) {
	if req.Constraint != "" {
		c, ok := s.registry.Get(req.Constraint)
		if !ok {
			return phone.Constraint{}, apperr.NotFound("unknown constraint").WithDetails(map[string]string{"constraint": req.Constraint})
		}
		return c, nil
	}

	options := map[string]any{}
	if len(req.Types) > 0 {
		options["type"] = req.Types
	}
	if req.DefaultRegion != "" {
		options["defaultRegion"] = req.DefaultRegion
	}
	if req.RegionPath != "" {
		options["regionPath"] = req.RegionPath
	}
	if req.Format != "" {
		options["format"] = req.Format
	}
	if req.Message != "" {
		options["message"] = sanitize.Text(req.Message)
	}

	c, err := phone.ConstraintFromOptions(options, phone.WithLogger(s.log))
	if err != nil {
		return phone.Constraint{}, apperr.FromPhone(err).WithOp("phonecheck.constraintFor")
	}
	if err := c.Check(); err != nil {
		return phone.Constraint{}, apperr.FromPhone(err).WithOp("phonecheck.constraintFor")
	}
	return c, nil
}

// Normalize decodes req.Value and encodes it back in canonical form. Empty
// input yields a null number.
func (s *Service) Normalize(ctx context.Context, req NormalizeRequest) (NormalizeResponse, error) {
	if req.Value == nil || strings.TrimSpace(*req.Value) == "" {
		s.metrics.ObserveNormalize("empty")
		return NormalizeResponse{}, nil
	}

	codec, err := s.codecFor(req)
	if err != nil {
		return NormalizeResponse{}, err
	}

	input := strings.TrimSpace(*req.Value)
	key := cacheKey(codec.Region(), codec.OutputFormat(), input)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.metrics.ObserveCache(true)
			s.metrics.ObserveNormalize("ok")
			return cached, nil
		}
		s.metrics.ObserveCache(false)
	}

	number, err := codec.Decode(input)
	if err != nil {
		s.metrics.ObserveNormalize("decode_error")
		return NormalizeResponse{}, apperr.FromPhone(err).WithOp("phonecheck.Normalize")
	}

	encoded := codec.Encode(number)
	resp := NormalizeResponse{
		Number: &encoded,
		Type:   typeName(s.engine, number),
		Region: s.engine.Region(number),
		Valid:  s.engine.IsValid(number),
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, resp)
	}
	s.metrics.ObserveNormalize("ok")
	return resp, nil
}

func (s *Service) codecFor(req NormalizeRequest) (*phone.Codec, error) {
	if req.Region == "" && req.Format == "" {
		return s.codec, nil
	}

	region := s.codec.Region()
	if req.Region != "" {
		canonical, err := constraints.CanonicalRegion(req.Region)
		if err != nil {
			return nil, apperr.FromPhone(err).WithOp("phonecheck.codecFor")
		}
		region = canonical
	}

	format := s.codec.OutputFormat()
	if req.Format != "" {
		parsed, err := phone.ParseDisplayFormat(req.Format)
		if err != nil {
			return nil, apperr.FromPhone(err).WithOp("phonecheck.codecFor")
		}
		format = parsed
	}

	return phone.NewCodec(s.engine, phone.WithCodecRegion(region), phone.WithOutputFormat(format)), nil
}

// Constraints lists the configured constraints in schema order.
func (s *Service) Constraints() ([]ConstraintSummary, error) {
	names := s.registry.Names()
	result := make([]ConstraintSummary, 0, len(names))
	for _, name := range names {
		c, _ := s.registry.Get(name)
		if err := c.Check(); err != nil {
			return nil, apperr.FromPhone(err).WithOp("phonecheck.Constraints")
		}

		types := c.AcceptedTypes()
		typeNames := make([]string, len(types))
		for i, t := range types {
			typeNames[i] = t.String()
		}

		summary := ConstraintSummary{
			Name:          name,
			Types:         typeNames,
			DefaultRegion: c.DefaultRegion(),
			RegionPath:    c.RegionPath(),
			Message:       c.Message(),
		}
		if format, ok := c.Format(); ok {
			summary.Format = format.String()
		}
		result = append(result, summary)
	}
	return result, nil
}

func typeName(engine phone.Engine, number *phonenumbers.PhoneNumber) string {
	if t, ok := phone.TypeOf(engine.Classify(number)); ok {
		return t.String()
	}
	return "unknown"
}
