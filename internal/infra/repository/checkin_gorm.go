package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/models"
)

const CodeNoActiveCheckIn = "no_active_check_in"

// ActiveCheckIn is one presence row joined with its user.
type ActiveCheckIn struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Username        string    `json:"username"`
	ProfileImage    string    `json:"profile_image"`
	CheckInTime     time.Time `json:"check_in_time"`
	OccupancyReport *int      `json:"occupancy_report,omitempty"`
}

// CheckInHistoryRow is one past or present check-in joined with its venue.
type CheckInHistoryRow struct {
	ID              uint       `json:"id"`
	VenueID         uint       `json:"venue_id"`
	VenueName       string     `json:"venue_name"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	Status          string     `json:"status"`
	OccupancyReport *int       `json:"occupancy_report,omitempty"`
}

type Occupancy struct {
	ActiveUsers         int64 `json:"active_users"`
	OccupancyLimit      int   `json:"occupancy_limit"`
	OccupancyPercentage int   `json:"occupancy_percentage"`
}

type CheckInGormRepository struct {
	db *gorm.DB
}

func NewCheckInGormRepository(db *gorm.DB) *CheckInGormRepository {
	return &CheckInGormRepository{db: db}
}

// Create closes any active check-in the user holds elsewhere, then opens the
// new one, as a single unit. At most one active check-in per user exists
// afterwards; the partial unique index backs this up under races.
func (r *CheckInGormRepository) Create(
	ctx context.Context,
	venueID uint,
	userID uint,
	occupancyReport *int,
) (*models.CheckIn, error) {

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	checkIn := models.CheckIn{
		VenueID:         venueID,
		UserID:          userID,
		Status:          models.CheckInActive,
		OccupancyReport: occupancyReport,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.CheckIn{}).
			Where("user_id = ? AND check_out_time IS NULL", userID).
			Updates(map[string]any{
				"check_out_time": now,
				"status":         models.CheckInCompleted,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&checkIn).Error
	})
	if err != nil {
		return nil, err
	}

	return &checkIn, nil
}

// CheckOut ends the user's active check-in, wherever it is.
func (r *CheckInGormRepository) CheckOut(
	ctx context.Context,
	userID uint,
) (*models.CheckIn, error) {

	var active models.CheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_out_time IS NULL", userID).
		First(&active).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(CodeNoActiveCheckIn)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active.CheckOutTime = &now
	active.Status = models.CheckInCompleted

	if err := r.db.WithContext(ctx).Save(&active).Error; err != nil {
		return nil, err
	}

	return &active, nil
}

func (r *CheckInGormRepository) ActiveForVenue(
	ctx context.Context,
	venueID uint,
) ([]ActiveCheckIn, error) {

	var rows []ActiveCheckIn
	err := r.db.WithContext(ctx).
		Table("check_ins AS ci").
		Select(`ci.id, ci.user_id, u.username, u.profile_image,
            ci.check_in_time, ci.occupancy_report`).
		Joins("JOIN users u ON u.id = ci.user_id").
		Where("ci.venue_id = ? AND ci.check_out_time IS NULL", venueID).
		Order("ci.check_in_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *CheckInGormRepository) UserHistory(
	ctx context.Context,
	userID uint,
	page int,
	limit int,
) ([]CheckInHistoryRow, int64, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var rows []CheckInHistoryRow
	err := r.db.WithContext(ctx).
		Table("check_ins AS ci").
		Select(`ci.id, ci.venue_id, v.name AS venue_name, ci.check_in_time,
            ci.check_out_time, ci.status, ci.occupancy_report`).
		Joins("JOIN venues v ON v.id = ci.venue_id").
		Where("ci.user_id = ?", userID).
		Order("ci.check_in_time DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *CheckInGormRepository) VenueOccupancy(
	ctx context.Context,
	venueID uint,
	occupancyLimit int,
) (*Occupancy, error) {

	var active int64
	if err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("venue_id = ? AND check_out_time IS NULL", venueID).
		Count(&active).Error; err != nil {
		return nil, err
	}

	return &Occupancy{
		ActiveUsers:         active,
		OccupancyLimit:      occupancyLimit,
		OccupancyPercentage: OccupancyPercentage(active, occupancyLimit),
	}, nil
}

// OccupancyPercentage is zero when no limit is configured.
func OccupancyPercentage(active int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Round(float64(active) / float64(limit) * 100))
}
