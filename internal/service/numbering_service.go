package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// SequenceStore yields the next value of a named sequence
type SequenceStore interface {
	Next(ctx context.Context, prefix string) (int, error)
}

// NumberingService generates human-readable document numbers.
//
// Projects and measurement bills use monthly sequences backed by a row-locked
// counter, so their numbers are dense within a month:
//
//	PJ{YY}{MM}{NNN}   e.g. PJ2505001
//	MB{YY}{MM}-{NNN}  e.g. MB2505-001
//
// Quotations, purchase orders and accounting docs use date-plus-random
// numbers; uniqueness is enforced by the column's unique index and the caller
// retries on collision:
//
//	{PREFIX}-{YYYYMMDD}-{RRRR}  e.g. QT-20250531-4821
type NumberingService struct {
	seq    SequenceStore
	logger *zap.Logger
	now    func() time.Time
	randFn func(n int) int
}

// NewNumberingService creates a new NumberingService
func NewNumberingService(seq SequenceStore, logger *zap.Logger) *NumberingService {
	return &NumberingService{
		seq:    seq,
		logger: logger,
		now:    time.Now,
		randFn: rand.Intn,
	}
}

// ProjectNumber generates the next project number for the current month
func (s *NumberingService) ProjectNumber(ctx context.Context) (string, error) {
	t := s.now()
	prefix := fmt.Sprintf("PJ%02d%02d", t.Year()%100, int(t.Month()))

	next, err := s.seq.Next(ctx, prefix)
	if err != nil {
		s.logger.Error("failed to get next project sequence",
			zap.String("prefix", prefix),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate project number: %w", err)
	}

	number := fmt.Sprintf("%s%03d", prefix, next)

	s.logger.Info("generated project number",
		zap.String("number", number),
		zap.Int("sequence", next))

	return number, nil
}

// BillNumber generates the next measurement bill number for the current month
func (s *NumberingService) BillNumber(ctx context.Context) (string, error) {
	t := s.now()
	prefix := fmt.Sprintf("MB%02d%02d", t.Year()%100, int(t.Month()))

	next, err := s.seq.Next(ctx, prefix)
	if err != nil {
		s.logger.Error("failed to get next bill sequence",
			zap.String("prefix", prefix),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate bill number: %w", err)
	}

	number := fmt.Sprintf("%s-%03d", prefix, next)

	s.logger.Info("generated bill number",
		zap.String("number", number),
		zap.Int("sequence", next))

	return number, nil
}

// RandomDocNumber generates a date-stamped number with a random 4-digit
// suffix, e.g. QT-20250531-4821. Collisions are possible and the caller is
// expected to retry against the unique index.
func (s *NumberingService) RandomDocNumber(prefix string) string {
	t := s.now()
	return fmt.Sprintf("%s-%04d%02d%02d-%04d",
		prefix, t.Year(), int(t.Month()), t.Day(), s.randFn(10000))
}
