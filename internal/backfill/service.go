package backfill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/phone"
)

// Store is what the backfill needs from storage.
type Store interface {
	ListAfter(ctx context.Context, after uuid.UUID, limit int) ([]Row, error)
	UpdatePhone(ctx context.Context, id uuid.UUID, value string) error
}

// Result counts what a run did with each row.
type Result struct {
	Scanned   int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
}

// Service walks the table in id order and rewrites every decodable, valid
// number with the codec's output format. Undecodable and invalid values are
// left as they are.
type Service struct {
	store     Store
	codec     *phone.Codec
	engine    phone.Engine
	batchSize int
	dryRun    bool
	log       *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDryRun reports changes without writing them.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) { s.dryRun = dryRun }
}

func NewService(store Store, engine phone.Engine, codec *phone.Codec, batchSize int, log *logger.Logger, opts ...Option) *Service {
	if batchSize < 1 {
		batchSize = 1
	}
	s := &Service{store: store, codec: codec, engine: engine, batchSize: batchSize, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes every row. It stops early only when listing fails or ctx is
// cancelled; per-row failures are logged and counted.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var result Result
	after := uuid.Nil

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rows, err := s.store.ListAfter(ctx, after, s.batchSize)
		if err != nil {
			return result, fmt.Errorf("list rows after %s: %w", after, err)
		}
		if len(rows) == 0 {
			return result, nil
		}

		for _, row := range rows {
			result.Scanned++
			s.process(ctx, row, &result)
		}
		after = rows[len(rows)-1].ID

		s.log.Info("backfill batch done",
			"scanned", result.Scanned,
			"updated", result.Updated,
			"skipped", result.Skipped,
		)

		if len(rows) < s.batchSize {
			return result, nil
		}
	}
}

func (s *Service) process(ctx context.Context, row Row, result *Result) {
	number, err := s.codec.Decode(row.Phone)
	if err != nil {
		s.log.Info("skipping undecodable phone", "id", row.ID, "error", err)
		result.Skipped++
		return
	}
	if number == nil || !s.engine.IsValid(number) {
		s.log.Info("skipping invalid phone", "id", row.ID)
		result.Skipped++
		return
	}

	canonical := s.codec.Encode(number)
	if canonical == row.Phone {
		result.Unchanged++
		return
	}

	if s.dryRun {
		s.log.Info("would update phone", "id", row.ID)
		result.Updated++
		return
	}

	if err := s.store.UpdatePhone(ctx, row.ID, canonical); err != nil {
		s.log.Error("failed to update phone", "id", row.ID, "error", err)
		result.Failed++
		return
	}
	result.Updated++
}
