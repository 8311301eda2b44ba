package services

import (
	"context"
	"testing"
	"time"

	"github.com/roomsathi/roomsathi/internal/geo"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeProfileService struct {
	profiles map[string]*models.Profile
}

func (f *fakeProfileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	return f.Get(ctx, userID)
}

func (f *fakeProfileService) Get(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

func (f *fakeProfileService) Upsert(_ context.Context, p *models.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

type fakeListingRepo struct {
	listings []models.Listing
}

func (f *fakeListingRepo) Insert(context.Context, *models.Listing) error { return nil }
func (f *fakeListingRepo) GetByID(context.Context, string) (*models.Listing, error) {
	return nil, assert.AnError
}
func (f *fakeListingRepo) Update(context.Context, *models.Listing) error { return nil }
func (f *fakeListingRepo) ListOpenByCity(_ context.Context, _ string, _ int) ([]models.Listing, error) {
	return f.listings, nil
}
func (f *fakeListingRepo) ListByOwner(context.Context, string) ([]models.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) SetStatus(context.Context, string, models.ListingStatus) error { return nil }
func (f *fakeListingRepo) SetCoordinates(context.Context, string, float64, float64) error {
	return nil
}
func (f *fakeListingRepo) ExpireOverdue(context.Context, time.Time) (int64, error) { return 0, nil }
func (f *fakeListingRepo) CountByStatus(context.Context, models.ListingStatus) (int64, error) {
	return 0, nil
}

type fakeRequestRepo struct {
	requests []models.RoomRequest
}

func (f *fakeRequestRepo) Insert(context.Context, *models.RoomRequest) error { return nil }
func (f *fakeRequestRepo) GetByID(context.Context, string) (*models.RoomRequest, error) {
	return nil, assert.AnError
}
func (f *fakeRequestRepo) Update(context.Context, *models.RoomRequest) error { return nil }
func (f *fakeRequestRepo) ListOpenByCity(_ context.Context, _ string, _ int) ([]models.RoomRequest, error) {
	return f.requests, nil
}
func (f *fakeRequestRepo) ListByOwner(context.Context, string) ([]models.RoomRequest, error) {
	return nil, nil
}
func (f *fakeRequestRepo) SetStatus(context.Context, string, models.RequestStatus) error { return nil }
func (f *fakeRequestRepo) ExpireOverdue(context.Context, time.Time) (int64, error) { return 0, nil }
func (f *fakeRequestRepo) CountByStatus(context.Context, models.RequestStatus) (int64, error) {
	return 0, nil
}

type fakeProfileRepo struct {
	profiles map[string]models.Profile
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, assert.AnError
	}
	return &p, nil
}

func (f *fakeProfileRepo) GetByUserIDs(_ context.Context, userIDs []string) (map[string]models.Profile, error) {
	out := map[string]models.Profile{}
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Upsert(context.Context, *models.Profile) error { return nil }
func (f *fakeProfileRepo) SetCoordinates(context.Context, string, float64, float64) error {
	return nil
}
func (f *fakeProfileRepo) SetVerified(context.Context, string, bool) error { return nil }
func (f *fakeProfileRepo) Count(context.Context) (int64, error)            { return 0, nil }

type fixedLocator struct {
	coords *geo.Coordinates
}

func (l *fixedLocator) Current(context.Context) *geo.Coordinates { return l.coords }

func ptr(v float64) *float64 { return &v }

func newMatchFixture(listings []models.Listing, requests []models.RoomRequest, owners map[string]models.Profile, locator geo.Locator) MatchService {
	seeker := &models.Profile{
		UserID:       "seeker",
		City:         "Pune",
		HomeDistrict: "Satara",
		College:      "COEP",
		Gender:       "female",
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewMatchService(
		&fakeProfileService{profiles: map[string]*models.Profile{"seeker": seeker}},
		&fakeListingRepo{listings: listings},
		&fakeRequestRepo{requests: requests},
		&fakeProfileRepo{profiles: owners},
		locator,
		log,
	)
}

func TestRankListingsOrdersByScoreThenDistance(t *testing.T) {
	listings := []models.Listing{
		{ID: "weak", OwnerID: "o1", City: "Mumbai", GenderPreference: "any"},
		{ID: "strong", OwnerID: "o2", City: "Pune", GenderPreference: "female"},
		{
			ID: "near", OwnerID: "o3", City: "Mumbai", GenderPreference: "any",
			Latitude: ptr(18.60), Longitude: ptr(73.80),
		},
		{
			ID: "far", OwnerID: "o4", City: "Mumbai", GenderPreference: "any",
			Latitude: ptr(28.61), Longitude: ptr(77.21),
		},
	}

	svc := newMatchFixture(listings, nil, map[string]models.Profile{}, nil)

	viewer := &geo.Coordinates{Latitude: 18.52, Longitude: 73.85}
	out, err := svc.RankListings(context.Background(), "seeker", "", viewer, 0)
	require.NoError(t, err)
	require.Len(t, out, 4)

	// same-city + gender match outranks everything
	assert.Equal(t, "strong", out[0].Listing.ID)

	// equal scores: known distance ahead of unknown, nearer first
	assert.Equal(t, "near", out[1].Listing.ID)
	assert.Equal(t, "far", out[2].Listing.ID)
	assert.Equal(t, "weak", out[3].Listing.ID)

	require.NotNil(t, out[1].DistanceKm)
	require.NotNil(t, out[2].DistanceKm)
	assert.Less(t, *out[1].DistanceKm, *out[2].DistanceKm)
	assert.Nil(t, out[3].DistanceKm)
}

func TestRankListingsSkipsOwnPosts(t *testing.T) {
	listings := []models.Listing{
		{ID: "mine", OwnerID: "seeker", City: "Pune"},
		{ID: "theirs", OwnerID: "o1", City: "Pune"},
	}

	svc := newMatchFixture(listings, nil, map[string]models.Profile{}, nil)

	out, err := svc.RankListings(context.Background(), "seeker", "Pune", nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "theirs", out[0].Listing.ID)
}

func TestRankListingsUsesPosterHints(t *testing.T) {
	listings := []models.Listing{
		{ID: "plain", OwnerID: "stranger", City: "Pune", GenderPreference: "any"},
		{ID: "hometown", OwnerID: "neighbour", City: "Pune", GenderPreference: "any"},
	}
	owners := map[string]models.Profile{
		"neighbour": {UserID: "neighbour", HomeDistrict: "Satara"},
	}

	svc := newMatchFixture(listings, nil, owners, nil)

	out, err := svc.RankListings(context.Background(), "seeker", "Pune", nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "hometown", out[0].Listing.ID)
	assert.Greater(t, out[0].Match.Score, out[1].Match.Score)
}

func TestRankListingsLocatorFallback(t *testing.T) {
	listings := []models.Listing{
		{
			ID: "located", OwnerID: "o1", City: "Pune", GenderPreference: "any",
			Latitude: ptr(18.60), Longitude: ptr(73.80),
		},
	}

	locator := &fixedLocator{coords: &geo.Coordinates{Latitude: 18.52, Longitude: 73.85}}
	svc := newMatchFixture(listings, nil, map[string]models.Profile{}, locator)

	// no explicit viewer coordinates: the locator fills them in
	out, err := svc.RankListings(context.Background(), "seeker", "Pune", nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].DistanceKm)
	assert.Greater(t, *out[0].DistanceKm, 0.0)
}

func TestRankListingsNoLocatorMeansNoDistance(t *testing.T) {
	listings := []models.Listing{
		{
			ID: "located", OwnerID: "o1", City: "Pune",
			Latitude: ptr(18.60), Longitude: ptr(73.80),
		},
	}

	svc := newMatchFixture(listings, nil, map[string]models.Profile{}, &fixedLocator{})

	out, err := svc.RankListings(context.Background(), "seeker", "Pune", nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].DistanceKm)
}

func TestRankRequestsReadsNestedPreferences(t *testing.T) {
	requests := []models.RoomRequest{
		{
			ID: "match", OwnerID: "o1", City: "Pune",
			Preferences: datatypes.NewJSONType(models.RequestPreferences{GenderPreference: "female"}),
		},
		{
			ID: "conflict", OwnerID: "o2", City: "Pune",
			Preferences: datatypes.NewJSONType(models.RequestPreferences{GenderPreference: "male"}),
		},
	}

	svc := newMatchFixture(nil, requests, map[string]models.Profile{}, nil)

	out, err := svc.RankRequests(context.Background(), "seeker", "Pune", nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// gender bonus applies to the matching request only; the conflicting one
	// is still listed
	assert.Equal(t, "match", out[0].Request.ID)
	assert.Greater(t, out[0].Match.Score, out[1].Match.Score)
}

func TestRankRequestsDistanceFromOwnerProfile(t *testing.T) {
	requests := []models.RoomRequest{
		{ID: "r1", OwnerID: "o1", City: "Pune"},
		{ID: "r2", OwnerID: "o2", City: "Pune"},
	}
	owners := map[string]models.Profile{
		"o1": {UserID: "o1", Latitude: ptr(18.60), Longitude: ptr(73.80)},
		"o2": {UserID: "o2"},
	}

	svc := newMatchFixture(nil, requests, owners, nil)

	viewer := &geo.Coordinates{Latitude: 18.52, Longitude: 73.85}
	out, err := svc.RankRequests(context.Background(), "seeker", "Pune", viewer, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "r1", out[0].Request.ID)
	require.NotNil(t, out[0].DistanceKm)
	assert.Nil(t, out[1].DistanceKm)
}

func TestRankListingsCityDefaultsToProfile(t *testing.T) {
	listings := []models.Listing{
		{ID: "l1", OwnerID: "o1", City: "Pune"},
	}

	svc := newMatchFixture(listings, nil, map[string]models.Profile{}, nil)

	// empty city falls back to the seeker's profile city (Pune); the fake
	// repo ignores the filter, so just assert the call succeeds
	out, err := svc.RankListings(context.Background(), "seeker", "", nil, 0)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
