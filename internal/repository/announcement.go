package repository

import (
	"context"
	"supermercado-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	// ListActive returns active announcements whose optional time window
	// contains now.
	ListActive(ctx context.Context, now time.Time) ([]*model.Announcement, error)
}

type announcementRepoImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepoImpl{db: db}
}

func (r *announcementRepoImpl) ListActive(ctx context.Context, now time.Time) ([]*model.Announcement, error) {
	var announcements []*model.Announcement
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Order("created_at DESC").
		Find(&announcements).Error

	if err != nil {
		return nil, err
	}

	return announcements, nil
}
