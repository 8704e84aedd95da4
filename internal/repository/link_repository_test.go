package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/axellelanca/surl/internal/models"
)

func newTestRepository(t *testing.T) *GormLinkRepository {
	t.Helper()
	db, err := OpenDatabase(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewLinkRepository(db)
}

func TestCreateAndGetByShortCode(t *testing.T) {
	repo := newTestRepository(t)

	link := &models.Link{
		ShortCode: "AbC123",
		ShortURL:  "https://s.example/AbC123",
		LongURL:   "https://example.com/long",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateLink(link))
	assert.NotZero(t, link.ID)

	got, err := repo.GetLinkByShortCode("AbC123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/long", got.LongURL)
	assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
}

func TestGetByShortCode_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetLinkByShortCode("missing")

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestGetRecentLinks(t *testing.T) {
	repo := newTestRepository(t)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.CreateLink(&models.Link{
			ShortCode: fmt.Sprintf("c%d", i),
			ShortURL:  fmt.Sprintf("https://s.example/c%d", i),
			LongURL:   "https://example.com",
		}))
	}

	recent, err := repo.GetRecentLinks(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c3", recent[0].ShortCode)
	assert.Equal(t, "c2", recent[1].ShortCode)

	all, err := repo.GetAllLinks()
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "c0", all[0].ShortCode)
}
