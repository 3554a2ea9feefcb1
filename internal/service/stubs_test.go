package service

import (
	"context"
	"errors"
	"testing"

	"atelier/internal/models"
	"atelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// artworkRepoStub is a stub for repository.ArtworkRepository.
type artworkRepoStub struct {
	createFn         func(context.Context, *models.Artwork) error
	getByIDFn        func(context.Context, string) (*models.Artwork, error)
	listFn           func(context.Context, repository.ArtworkFilter, int, int) ([]*models.Artwork, error)
	listByUserFn     func(context.Context, uint, repository.ArtworkFilter, int, int) ([]*models.Artwork, error)
	updateFn         func(context.Context, *models.Artwork) error
	deleteFn         func(context.Context, string) error
	incrementViewsFn func(context.Context, string) error
}

func (s *artworkRepoStub) Create(ctx context.Context, artwork *models.Artwork) error {
	return s.createFn(ctx, artwork)
}
func (s *artworkRepoStub) GetByID(ctx context.Context, id string) (*models.Artwork, error) {
	return s.getByIDFn(ctx, id)
}
func (s *artworkRepoStub) List(ctx context.Context, filter repository.ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *artworkRepoStub) ListByUser(ctx context.Context, userID uint, filter repository.ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	return s.listByUserFn(ctx, userID, filter, limit, offset)
}
func (s *artworkRepoStub) Update(ctx context.Context, artwork *models.Artwork) error {
	return s.updateFn(ctx, artwork)
}
func (s *artworkRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *artworkRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.incrementViewsFn(ctx, id)
}

func noopArtworkRepo() *artworkRepoStub {
	return &artworkRepoStub{
		createFn:  func(_ context.Context, _ *models.Artwork) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Artwork, error) { return &models.Artwork{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.ArtworkFilter, _, _ int) ([]*models.Artwork, error) {
			return nil, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.ArtworkFilter, _, _ int) ([]*models.Artwork, error) {
			return nil, nil
		},
		updateFn:         func(_ context.Context, _ *models.Artwork) error { return nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
		incrementViewsFn: func(_ context.Context, _ string) error { return nil },
	}
}

// galleryRepoStub is a stub for repository.GalleryRepository.
type galleryRepoStub struct {
	createFn                      func(context.Context, *models.Gallery) error
	getByIDFn                     func(context.Context, string) (*models.Gallery, error)
	listFn                        func(context.Context, int, int) ([]*models.Gallery, error)
	listByUserFn                  func(context.Context, uint, int, int) ([]*models.Gallery, error)
	deleteFn                      func(context.Context, string) error
	addArtworkFn                  func(context.Context, string, string) error
	removeArtworkFn               func(context.Context, string, string) error
	listArtworksFn                func(context.Context, string, repository.ArtworkFilter) ([]*models.Artwork, error)
	deleteMembershipsForGalleryFn func(context.Context, string) error
	deleteMembershipsForArtworkFn func(context.Context, string) error
}

func (s *galleryRepoStub) Create(ctx context.Context, gallery *models.Gallery) error {
	return s.createFn(ctx, gallery)
}
func (s *galleryRepoStub) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	return s.getByIDFn(ctx, id)
}
func (s *galleryRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *galleryRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Gallery, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *galleryRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *galleryRepoStub) AddArtwork(ctx context.Context, galleryID, artworkID string) error {
	return s.addArtworkFn(ctx, galleryID, artworkID)
}
func (s *galleryRepoStub) RemoveArtwork(ctx context.Context, galleryID, artworkID string) error {
	return s.removeArtworkFn(ctx, galleryID, artworkID)
}
func (s *galleryRepoStub) ListArtworks(ctx context.Context, galleryID string, filter repository.ArtworkFilter) ([]*models.Artwork, error) {
	return s.listArtworksFn(ctx, galleryID, filter)
}
func (s *galleryRepoStub) DeleteMembershipsForGallery(ctx context.Context, galleryID string) error {
	return s.deleteMembershipsForGalleryFn(ctx, galleryID)
}
func (s *galleryRepoStub) DeleteMembershipsForArtwork(ctx context.Context, artworkID string) error {
	return s.deleteMembershipsForArtworkFn(ctx, artworkID)
}

func noopGalleryRepo() *galleryRepoStub {
	return &galleryRepoStub{
		createFn:  func(_ context.Context, _ *models.Gallery) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Gallery, error) { return &models.Gallery{ID: id}, nil },
		listFn:    func(_ context.Context, _, _ int) ([]*models.Gallery, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Gallery, error) {
			return nil, nil
		},
		deleteFn:        func(_ context.Context, _ string) error { return nil },
		addArtworkFn:    func(_ context.Context, _, _ string) error { return nil },
		removeArtworkFn: func(_ context.Context, _, _ string) error { return nil },
		listArtworksFn: func(_ context.Context, _ string, _ repository.ArtworkFilter) ([]*models.Artwork, error) {
			return nil, nil
		},
		deleteMembershipsForGalleryFn: func(_ context.Context, _ string) error { return nil },
		deleteMembershipsForArtworkFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, uint) (*models.Comment, error)
	listByArtworkFn   func(context.Context, string) ([]*models.Comment, error)
	deleteByArtworkFn func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArtwork(ctx context.Context, artworkID string) ([]*models.Comment, error) {
	return s.listByArtworkFn(ctx, artworkID)
}
func (s *commentRepoStub) DeleteByArtwork(ctx context.Context, artworkID string) error {
	return s.deleteByArtworkFn(ctx, artworkID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:          func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:         func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByArtworkFn:   func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		deleteByArtworkFn: func(_ context.Context, _ string) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	listFn              func(context.Context, int, int) ([]*models.User, error)
	updateFn            func(context.Context, *models.User) error
	updatePreferencesFn func(context.Context, uint, models.Preferences) error
	setAdminFn          func(context.Context, uint, bool) error
	setBannedFn         func(context.Context, uint, bool) error
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePreferences(ctx context.Context, id uint, prefs models.Preferences) error {
	return s.updatePreferencesFn(ctx, id, prefs)
}
func (s *userRepoStub) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	return s.setAdminFn(ctx, id, isAdmin)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, isBanned bool) error {
	return s.setBannedFn(ctx, id, isBanned)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:            func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:              func(_ context.Context, _, _ int) ([]*models.User, error) { return nil, nil },
		updateFn:            func(_ context.Context, _ *models.User) error { return nil },
		updatePreferencesFn: func(_ context.Context, _ uint, _ models.Preferences) error { return nil },
		setAdminFn:          func(_ context.Context, _ uint, _ bool) error { return nil },
		setBannedFn:         func(_ context.Context, _ uint, _ bool) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
	}
}

// assertCode asserts that err is an AppError carrying the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
