package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/models"
	"github.com/vdavid/chatlens/internal/testutil"
)

func sampleSummary(messages int) *models.Summary {
	profanity := 2
	return &models.Summary{
		TotalMessages:           messages,
		UniqueSenders:           2,
		TotalWords:              50,
		TotalCharacters:         300,
		TotalProfanity:          &profanity,
		UniqueSendersList:       []string{"Alice", "Bob"},
		MessagesPerSender:       map[string]int{"Alice": messages - 3, "Bob": 3},
		CharacterCountPerSender: map[string]int{"Alice": 200, "Bob": 100},
		WordCountPerSender:      map[string]int{"Alice": 35, "Bob": 15},
		ProfanityCountPerSender: map[string]int{"Alice": 2, "Bob": 0},
		ProfanityList:           []string{"zut"},
	}
}

// runStoreContract exercises the behavior every Store implementation shares.
func runStoreContract(t *testing.T, store db.Store) {
	ctx := context.Background()

	t.Run("latest summary is not found on an empty store", func(t *testing.T) {
		_, err := store.LatestSummary(ctx)
		assert.True(t, errors.Is(err, db.ErrSummaryNotFound), "got %v", err)

		exports, err := store.ListExports(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, exports)
	})

	var first, second *models.ChatExport

	t.Run("saves exports", func(t *testing.T) {
		var err error
		first, err = store.SaveExport(ctx, "first.txt", sampleSummary(10))
		require.NoError(t, err)
		assert.NotEmpty(t, first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		second, err = store.SaveExport(ctx, "second.txt", sampleSummary(20))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("latest summary is the last saved one", func(t *testing.T) {
		summary, err := store.LatestSummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleSummary(20), summary)
	})

	t.Run("gets an export by id", func(t *testing.T) {
		export, err := store.GetExport(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first.txt", export.Filename)
		assert.Equal(t, sampleSummary(10), export.Summary)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := store.GetExport(ctx, "00000000-0000-0000-0000-000000000000")
		assert.True(t, errors.Is(err, db.ErrSummaryNotFound), "got %v", err)

		_, err = store.GetExport(ctx, "not-a-uuid")
		assert.True(t, errors.Is(err, db.ErrSummaryNotFound), "got %v", err)
	})

	t.Run("lists newest first and honors the limit", func(t *testing.T) {
		exports, err := store.ListExports(ctx, 10)
		require.NoError(t, err)
		require.Len(t, exports, 2)
		assert.Equal(t, second.ID, exports[0].ID)
		assert.Equal(t, first.ID, exports[1].ID)
		assert.Nil(t, exports[0].Summary)

		exports, err = store.ListExports(ctx, 1)
		require.NoError(t, err)
		require.Len(t, exports, 1)
		assert.Equal(t, "second.txt", exports[0].Filename)
	})

	t.Run("summaries without profanity stay without profanity", func(t *testing.T) {
		plain := sampleSummary(5)
		plain.TotalProfanity = nil
		plain.ProfanityCountPerSender = nil
		plain.ProfanityList = nil

		_, err := store.SaveExport(ctx, "plain.txt", plain)
		require.NoError(t, err)

		summary, err := store.LatestSummary(ctx)
		require.NoError(t, err)
		assert.False(t, summary.HasProfanity())
		assert.Nil(t, summary.TotalProfanity)
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreContract(t, testutil.NewTestSQLiteStore(t))
}

func TestPostgresStore(t *testing.T) {
	pool := testutil.NewTestDB(t)
	store := db.NewPostgresStore(pool)
	defer func() {
		_ = store.Close()
	}()

	runStoreContract(t, store)
}
