package venue

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/workcafe/workcafe-api/internal/domain/venue"
	"github.com/workcafe/workcafe-api/internal/httperr"
	"github.com/workcafe/workcafe-api/internal/models"
)

// fakeRepo is an in-memory stand-in that mirrors the repository's contract,
// including its business-error behavior on moderation and claims.
type fakeRepo struct {
	venues    map[uint]*models.Venue
	amenities map[uint]*models.VenueAmenities
	dietary   map[uint]*models.VenueDietaryOptions

	nextID uint

	lastSubmission *domain.Submission
	lastUpdate     *domain.Update
	history        []models.VenueHistory

	failCreate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		venues:    map[uint]*models.Venue{},
		amenities: map[uint]*models.VenueAmenities{},
		dietary:   map[uint]*models.VenueDietaryOptions{},
		nextID:    1,
	}
}

func (f *fakeRepo) GetVenue(_ context.Context, id uint) (*models.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeRepo) GetDetail(_ context.Context, id uint, _ bool) (*domain.Detail, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.Detail{Venue: *v}, nil
}

func (f *fakeRepo) GetAmenities(_ context.Context, venueID uint) (*models.VenueAmenities, error) {
	a, ok := f.amenities[venueID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetDietary(_ context.Context, venueID uint) (*models.VenueDietaryOptions, error) {
	d, ok := f.dietary[venueID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) ListApproved(_ context.Context, _ domain.ListFilter) ([]domain.Summary, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ListPending(_ context.Context) ([]domain.Summary, error) {
	return nil, nil
}

func (f *fakeRepo) ListBySubmitter(_ context.Context, _ uint) ([]domain.Summary, error) {
	return nil, nil
}

func (f *fakeRepo) IncrementViewCount(_ context.Context, _ uint) error {
	return nil
}

func (f *fakeRepo) CreateSubmission(_ context.Context, sub *domain.Submission) (uint, error) {
	if f.failCreate != nil {
		return 0, f.failCreate
	}

	id := f.nextID
	f.nextID++

	v := sub.Venue
	v.ID = id
	f.venues[id] = &v

	a := sub.Amenities
	a.VenueID = id
	f.amenities[id] = &a

	d := sub.Dietary
	d.VenueID = id
	f.dietary[id] = &d

	f.lastSubmission = sub
	f.history = append(f.history, models.VenueHistory{
		VenueID:          id,
		ModifiedBy:       v.SubmittedBy,
		ModificationType: models.HistoryCreate,
		Reason:           sub.Reason,
	})

	return id, nil
}

func (f *fakeRepo) SaveUpdate(_ context.Context, upd *domain.Update) error {
	f.venues[upd.Venue.ID] = upd.Venue
	if upd.Amenities != nil {
		f.amenities[upd.Venue.ID] = upd.Amenities
	}
	if upd.Dietary != nil {
		f.dietary[upd.Venue.ID] = upd.Dietary
	}

	f.lastUpdate = upd
	f.history = append(f.history, models.VenueHistory{
		VenueID:          upd.Venue.ID,
		ModifiedBy:       upd.EditorID,
		ModificationType: models.HistoryUpdate,
		Reason:           upd.Reason,
	})
	return nil
}

func (f *fakeRepo) SetModeration(_ context.Context, id uint, status domain.Status, reason string, adminID uint) error {
	v, ok := f.venues[id]
	if !ok {
		return httperr.ErrBusiness(domain.CodeNotPending)
	}
	if err := domain.CanModerate(domain.Status(v.Status)); err != nil {
		return err
	}

	v.Status = string(status)
	if status == domain.StatusRejected {
		v.RejectionReason = reason
	}

	kind := models.HistoryApprove
	if status == domain.StatusRejected {
		kind = models.HistoryReject
	}
	f.history = append(f.history, models.VenueHistory{
		VenueID:          id,
		ModifiedBy:       adminID,
		ModificationType: kind,
		Reason:           reason,
	})
	return nil
}

func (f *fakeRepo) ClaimVenue(_ context.Context, id uint, userID uint) error {
	v, ok := f.venues[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v.IsClaimed {
		return httperr.ErrBusiness(domain.CodeAlreadyClaimed)
	}

	v.IsClaimed = true
	v.ClaimedBy = &userID

	f.history = append(f.history, models.VenueHistory{
		VenueID:          id,
		ModifiedBy:       userID,
		ModificationType: models.HistoryClaim,
	})
	return nil
}

func (f *fakeRepo) DeleteVenue(_ context.Context, id uint, adminID uint, reason string) error {
	if _, ok := f.venues[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	f.history = append(f.history, models.VenueHistory{
		VenueID:          id,
		ModifiedBy:       adminID,
		ModificationType: models.HistoryDelete,
		Reason:           reason,
	})
	delete(f.venues, id)
	return nil
}

func (f *fakeRepo) AddPhoto(_ context.Context, _ *models.VenuePhoto) error {
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
