package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
	"github.com/draperly/atelier-api/internal/testutil"
)

// Next relies on SELECT FOR UPDATE, which SQLite does not speak, so these
// tests cover migration, ID assignment and reads. Next itself is exercised
// through the Postgres-backed deployment.

func TestDocumentSequence_MigratesAndAssignsID(t *testing.T) {
	db := testutil.OpenTestDB(t, &domain.DocumentSequence{})

	seq := &domain.DocumentSequence{Prefix: "PJ2505", LastSequence: 1}
	require.NoError(t, db.Create(seq).Error)

	// the ID comes from the BeforeCreate hook, not a database default
	assert.NotEqual(t, uuid.Nil, seq.ID)

	var reloaded domain.DocumentSequence
	require.NoError(t, db.Where("prefix = ?", "PJ2505").First(&reloaded).Error)
	assert.Equal(t, seq.ID, reloaded.ID)
	assert.Equal(t, 1, reloaded.LastSequence)
}

func TestDocumentSequence_PrefixIsUnique(t *testing.T) {
	db := testutil.OpenTestDB(t, &domain.DocumentSequence{})

	require.NoError(t, db.Create(&domain.DocumentSequence{Prefix: "MB2505"}).Error)
	err := db.Create(&domain.DocumentSequence{Prefix: "MB2505"}).Error
	assert.Error(t, err)
}

func TestSequenceCurrent(t *testing.T) {
	db := testutil.OpenTestDB(t, &domain.DocumentSequence{})
	repo := repository.NewSequenceRepository(db)
	ctx := context.Background()

	current, err := repo.Current(ctx, "QT2505")
	require.NoError(t, err)
	assert.Zero(t, current)

	require.NoError(t, db.Create(&domain.DocumentSequence{Prefix: "QT2505", LastSequence: 7}).Error)

	current, err = repo.Current(ctx, "QT2505")
	require.NoError(t, err)
	assert.Equal(t, 7, current)
}
