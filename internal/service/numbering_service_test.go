package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSequenceStore struct {
	counters map[string]int
}

func (f *fakeSequenceStore) Next(_ context.Context, prefix string) (int, error) {
	if f.counters == nil {
		f.counters = make(map[string]int)
	}
	f.counters[prefix]++
	return f.counters[prefix], nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProjectNumber(t *testing.T) {
	svc := NewNumberingService(&fakeSequenceStore{}, zap.NewNop())
	svc.now = fixedClock(time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))

	first, err := svc.ProjectNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PJ2505001", first)

	second, err := svc.ProjectNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PJ2505002", second)
}

func TestProjectNumber_ResetsPerMonth(t *testing.T) {
	store := &fakeSequenceStore{}
	svc := NewNumberingService(store, zap.NewNop())

	svc.now = fixedClock(time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC))
	may, err := svc.ProjectNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PJ2505001", may)

	svc.now = fixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	june, err := svc.ProjectNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PJ2506001", june)
}

func TestBillNumber(t *testing.T) {
	svc := NewNumberingService(&fakeSequenceStore{}, zap.NewNop())
	svc.now = fixedClock(time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))

	number, err := svc.BillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MB2505-001", number)
}

func TestBillNumber_IndependentOfProjectSequence(t *testing.T) {
	store := &fakeSequenceStore{}
	svc := NewNumberingService(store, zap.NewNop())
	svc.now = fixedClock(time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))

	_, err := svc.ProjectNumber(context.Background())
	require.NoError(t, err)

	bill, err := svc.BillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MB2505-001", bill)
}

func TestRandomDocNumber(t *testing.T) {
	svc := NewNumberingService(&fakeSequenceStore{}, zap.NewNop())
	svc.now = fixedClock(time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC))
	svc.randFn = func(n int) int { return 4821 }

	assert.Equal(t, "QT-20250531-4821", svc.RandomDocNumber("QT"))
	assert.Equal(t, "INV-20250531-4821", svc.RandomDocNumber("INV"))
}

func TestRandomDocNumber_PadsSuffix(t *testing.T) {
	svc := NewNumberingService(&fakeSequenceStore{}, zap.NewNop())
	svc.now = fixedClock(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))
	svc.randFn = func(n int) int { return 7 }

	assert.Equal(t, "PO-20250102-0007", svc.RandomDocNumber("PO"))
}
