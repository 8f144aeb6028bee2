package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-parser/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{
		DSN: filepath.Join(t.TempDir(), "resumes.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(nil) })
	return db
}

func TestResumeRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewResumeRepository(db, nil)
	ctx := context.Background()

	parsedAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	row := &entity.Resume{
		FileID:     "drive-file-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "+44 20 7946 0000",
		Skills:     []string{"Go", "SQL", "Analytical Engines"},
		Experience: []string{"Analyst at Babbage & Co"},
		Education:  []string{"Mathematics, self-taught"},
		ParsedAt:   parsedAt,
	}
	require.NoError(t, repo.Insert(ctx, row))
	assert.NotEqual(t, row.ID.String(), "00000000-0000-0000-0000-000000000000")

	got, err := repo.ListResumes(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, row.ID, r.ID)
	assert.Equal(t, "drive-file-1", r.FileID)
	assert.Equal(t, "Ada Lovelace", r.Name)
	assert.Equal(t, "ada@example.com", r.Email)
	assert.Equal(t, "+44 20 7946 0000", r.Phone)
	assert.Equal(t, row.Skills, r.Skills)
	assert.Equal(t, row.Experience, r.Experience)
	assert.Equal(t, row.Education, r.Education)
	assert.WithinDuration(t, parsedAt, r.ParsedAt, time.Second)
}

func TestResumeEmptyFieldsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewResumeRepository(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &entity.Resume{FileID: "f2"}))

	got, err := repo.ListResumes(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Name)
	assert.Empty(t, got[0].Skills)
	assert.Empty(t, got[0].Experience)
	assert.Empty(t, got[0].Education)
	assert.False(t, got[0].ParsedAt.IsZero())
}

func TestListResumesDateWindow(t *testing.T) {
	db := openTestDB(t)
	repo := NewResumeRepository(db, nil)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range days {
		require.NoError(t, repo.Insert(ctx, &entity.Resume{
			FileID:   "f" + string(rune('0'+i)),
			ParsedAt: d,
		}))
	}

	all, err := repo.ListResumes(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	from := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListResumes(ctx, &from, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	got, err = repo.ListResumes(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].FileID)

	got, err = repo.ListResumes(ctx, nil, &to)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
