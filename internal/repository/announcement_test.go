package repository_test

import (
	"context"
	"supermercado-api/internal/model"
	"supermercado-api/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActiveAnnouncementsRespectsWindow(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewAnnouncementRepository(db)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	seed := []*model.Announcement{
		{Title: "siempre", Active: true},
		{Title: "vigente", Active: true, StartAt: &past, EndAt: &future},
		{Title: "pasado", Active: true, EndAt: &past},
		{Title: "futuro", Active: true, StartAt: &future},
		{Title: "apagado", Active: false},
	}
	require.NoError(t, db.Create(&seed).Error)

	announcements, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)

	titles := make([]string, 0, len(announcements))
	for _, a := range announcements {
		titles = append(titles, a.Title)
	}
	assert.ElementsMatch(t, []string{"siempre", "vigente"}, titles)
}
