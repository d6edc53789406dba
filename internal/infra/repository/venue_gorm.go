package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/models"
)

// Every multi-statement write runs under this deadline; a wedged transaction
// aborts and rolls back instead of holding a pooled connection.
const txTimeout = 5 * time.Second

const haversineFilterSQL = `(6371 * acos(
    cos(radians(?)) * cos(radians(v.latitude)) *
    cos(radians(v.longitude) - radians(?)) +
    sin(radians(?)) * sin(radians(v.latitude))
)) <= ?`

const primaryPhotoSQL = `(
    SELECT photo_url FROM venue_photos
    WHERE venue_id = v.id AND is_primary = true
    LIMIT 1
) AS primary_photo`

type VenueGormRepository struct {
	db *gorm.DB
}

func NewVenueGormRepository(db *gorm.DB) *VenueGormRepository {
	return &VenueGormRepository{db: db}
}

func (r *VenueGormRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()
	return r.db.WithContext(ctx).Transaction(fn)
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
// Unique constraints, not pre-insert checks, are the source of truth for the
// one-review / one-favorite / one-active-check-in rules.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *VenueGormRepository) GetVenue(
	ctx context.Context,
	id uint,
) (*models.Venue, error) {

	var v models.Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *VenueGormRepository) GetDetail(
	ctx context.Context,
	id uint,
	approvedOnly bool,
) (*domain.Detail, error) {

	q := r.db.WithContext(ctx).Where("id = ?", id)
	if approvedOnly {
		q = q.Where("status = ?", domain.StatusApproved)
	}

	var v models.Venue
	if err := q.First(&v).Error; err != nil {
		return nil, err
	}

	detail := &domain.Detail{Venue: v}

	row := struct {
		AverageRating float64
		ReviewCount   int64
	}{}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(id) AS review_count").
		Where("venue_id = ?", id).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	detail.AverageRating = row.AverageRating
	detail.ReviewCount = row.ReviewCount

	amenities, err := r.GetAmenities(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.AmenitiesRow = amenities

	dietary, err := r.GetDietary(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.DietaryRow = dietary

	if err := r.db.WithContext(ctx).
		Where("venue_id = ?", id).
		Order("day_of_week ASC").
		Find(&detail.HoursRows).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("venue_id = ?", id).
		Order("is_primary DESC, id ASC").
		Find(&detail.PhotoRows).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("venue_id = ?", id).
		Order("created_at DESC").
		Limit(3).
		Find(&detail.TopReviews).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&v).
		Association("Categories").
		Find(&detail.CategoryRows); err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *VenueGormRepository) GetAmenities(
	ctx context.Context,
	venueID uint,
) (*models.VenueAmenities, error) {

	var a models.VenueAmenities
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		First(&a).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *VenueGormRepository) GetDietary(
	ctx context.Context,
	venueID uint,
) (*models.VenueDietaryOptions, error) {

	var d models.VenueDietaryOptions
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *VenueGormRepository) applyListFilter(q *gorm.DB, f domain.ListFilter) *gorm.DB {
	q = q.Where("v.status = ?", domain.StatusApproved)

	if f.City != "" {
		q = q.Where("LOWER(v.city) = LOWER(?)", f.City)
	}
	if f.Wifi != nil {
		q = q.Where("a.has_wifi = ?", *f.Wifi)
	}
	if f.Power != "" {
		q = q.Where("a.power_outlets = ?", f.Power)
	}
	if f.Noise != "" {
		q = q.Where("a.noise_level = ?", f.Noise)
	}
	if f.Latitude != nil && f.Longitude != nil && f.Distance != nil {
		q = q.Where(haversineFilterSQL, *f.Latitude, *f.Longitude, *f.Latitude, *f.Distance)
	}

	return q
}

func (r *VenueGormRepository) ListApproved(
	ctx context.Context,
	f domain.ListFilter,
) ([]domain.Summary, int64, error) {

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	q := r.db.WithContext(ctx).
		Table("venues AS v").
		Select(`v.*,
            COALESCE(AVG(rv.rating), 0) AS average_rating,
            COUNT(rv.id) AS review_count,
            a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range,
            ` + primaryPhotoSQL).
		Joins("LEFT JOIN reviews rv ON rv.venue_id = v.id").
		Joins("LEFT JOIN venue_amenities a ON a.venue_id = v.id")

	q = r.applyListFilter(q, f).
		Group("v.id, a.has_wifi, a.wifi_speed, a.power_outlets, a.noise_level, a.price_range")

	switch f.Sort {
	case "reviews":
		q = q.Order("review_count DESC")
	case "newest":
		q = q.Order("v.created_at DESC")
	default:
		q = q.Order("average_rating DESC")
	}

	var rows []domain.Summary
	if err := q.Limit(f.Limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	// Page metadata wants the unpaginated total.
	cq := r.db.WithContext(ctx).
		Table("venues AS v").
		Joins("LEFT JOIN venue_amenities a ON a.venue_id = v.id")

	var total int64
	if err := r.applyListFilter(cq, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *VenueGormRepository) ListPending(
	ctx context.Context,
) ([]domain.Summary, error) {

	var rows []domain.Summary
	err := r.db.WithContext(ctx).
		Table("venues AS v").
		Select(`v.*,
            TRIM(u.first_name || ' ' || u.last_name) AS submitter_name,
            ` + primaryPhotoSQL).
		Joins("JOIN users u ON u.id = v.submitted_by").
		Where("v.status = ?", domain.StatusPending).
		Order("v.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *VenueGormRepository) ListBySubmitter(
	ctx context.Context,
	userID uint,
) ([]domain.Summary, error) {

	var rows []domain.Summary
	err := r.db.WithContext(ctx).
		Table("venues AS v").
		Select("v.*, " + primaryPhotoSQL).
		Where("v.submitted_by = ?", userID).
		Order("v.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *VenueGormRepository) IncrementViewCount(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Venue{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// --------------------------------------------------
// Transactional writes
// --------------------------------------------------

func (r *VenueGormRepository) CreateSubmission(
	ctx context.Context,
	sub *domain.Submission,
) (uint, error) {

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Hours", "Amenities", "Dietary", "Photos", "Categories").
			Create(&sub.Venue).Error; err != nil {
			return err
		}

		for i := range sub.Hours {
			sub.Hours[i].VenueID = sub.Venue.ID
		}
		if len(sub.Hours) > 0 {
			if err := tx.Create(&sub.Hours).Error; err != nil {
				return err
			}
		}

		sub.Amenities.VenueID = sub.Venue.ID
		if err := tx.Create(&sub.Amenities).Error; err != nil {
			return err
		}

		sub.Dietary.VenueID = sub.Venue.ID
		if err := tx.Create(&sub.Dietary).Error; err != nil {
			return err
		}

		for i := range sub.Photos {
			sub.Photos[i].VenueID = sub.Venue.ID
			sub.Photos[i].IsPrimary = i == 0
		}
		if len(sub.Photos) > 0 {
			if err := tx.Create(&sub.Photos).Error; err != nil {
				return err
			}
		}

		if len(sub.CategoryIDs) > 0 {
			cats := make([]models.Category, 0, len(sub.CategoryIDs))
			for _, id := range sub.CategoryIDs {
				cats = append(cats, models.Category{ID: id})
			}
			if err := tx.Model(&sub.Venue).Association("Categories").Append(&cats); err != nil {
				return err
			}
		}

		history := models.VenueHistory{
			VenueID:          sub.Venue.ID,
			ModifiedBy:       sub.Venue.SubmittedBy,
			ModificationType: models.HistoryCreate,
			Reason:           sub.Reason,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return 0, err
	}

	return sub.Venue.ID, nil
}

func (r *VenueGormRepository) SaveUpdate(
	ctx context.Context,
	upd *domain.Update,
) error {

	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Hours", "Amenities", "Dietary", "Photos", "Categories").
			Save(upd.Venue).Error; err != nil {
			return err
		}

		// Hours are replaced wholesale when provided.
		if upd.Hours != nil {
			if err := tx.Where("venue_id = ?", upd.Venue.ID).
				Delete(&models.VenueHours{}).Error; err != nil {
				return err
			}
			for i := range upd.Hours {
				upd.Hours[i].ID = 0
				upd.Hours[i].VenueID = upd.Venue.ID
			}
			if len(upd.Hours) > 0 {
				if err := tx.Create(&upd.Hours).Error; err != nil {
					return err
				}
			}
		}

		if upd.Amenities != nil {
			upd.Amenities.VenueID = upd.Venue.ID
			if err := tx.Save(upd.Amenities).Error; err != nil {
				return err
			}
		}

		if upd.Dietary != nil {
			upd.Dietary.VenueID = upd.Venue.ID
			if err := tx.Save(upd.Dietary).Error; err != nil {
				return err
			}
		}

		for i := range upd.NewPhotos {
			upd.NewPhotos[i].VenueID = upd.Venue.ID
			if err := addPhotoTx(tx, &upd.NewPhotos[i]); err != nil {
				return err
			}
		}

		history := models.VenueHistory{
			VenueID:          upd.Venue.ID,
			ModifiedBy:       upd.EditorID,
			ModificationType: models.HistoryUpdate,
			Reason:           upd.Reason,
		}
		return tx.Create(&history).Error
	})
}

func (r *VenueGormRepository) SetModeration(
	ctx context.Context,
	id uint,
	status domain.Status,
	reason string,
	adminID uint,
) error {

	return r.inTx(ctx, func(tx *gorm.DB) error {
		values := map[string]any{"status": string(status)}
		if status == domain.StatusRejected {
			values["rejection_reason"] = reason
		}

		res := tx.Model(&models.Venue{}).
			Where("id = ? AND status = ?", id, domain.StatusPending).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Missing or already moderated; the workflow has no re-review.
			return httperr.ErrBusiness(domain.CodeNotPending)
		}

		historyType := models.HistoryApprove
		if status == domain.StatusRejected {
			historyType = models.HistoryReject
		}

		history := models.VenueHistory{
			VenueID:          id,
			ModifiedBy:       adminID,
			ModificationType: historyType,
			Reason:           reason,
		}
		return tx.Create(&history).Error
	})
}

func (r *VenueGormRepository) ClaimVenue(
	ctx context.Context,
	id uint,
	userID uint,
) error {

	return r.inTx(ctx, func(tx *gorm.DB) error {
		var v models.Venue
		if err := tx.First(&v, id).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Venue{}).
			Where("id = ? AND is_claimed = false", id).
			Updates(map[string]any{
				"is_claimed": true,
				"claimed_by": userID,
				"claimed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(domain.CodeAlreadyClaimed)
		}

		history := models.VenueHistory{
			VenueID:          id,
			ModifiedBy:       userID,
			ModificationType: models.HistoryClaim,
			Reason:           "Location claimed by business owner",
		}
		return tx.Create(&history).Error
	})
}

func (r *VenueGormRepository) DeleteVenue(
	ctx context.Context,
	id uint,
	adminID uint,
	reason string,
) error {

	return r.inTx(ctx, func(tx *gorm.DB) error {
		var v models.Venue
		if err := tx.First(&v, id).Error; err != nil {
			return err
		}

		// History first; it has no FK, so it survives the cascade.
		history := models.VenueHistory{
			VenueID:          id,
			ModifiedBy:       adminID,
			ModificationType: models.HistoryDelete,
			Reason:           reason,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Venue{}, id).Error
	})
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

func addPhotoTx(tx *gorm.DB, photo *models.VenuePhoto) error {
	var count int64
	if err := tx.Model(&models.VenuePhoto{}).
		Where("venue_id = ?", photo.VenueID).
		Count(&count).Error; err != nil {
		return err
	}

	photo.IsPrimary = count == 0
	return tx.Create(photo).Error
}

func (r *VenueGormRepository) AddPhoto(
	ctx context.Context,
	photo *models.VenuePhoto,
) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return addPhotoTx(tx, photo)
	})
}

// Compile-time check
var _ domain.Repository = (*VenueGormRepository)(nil)
