package services

import (
	"context"
	"sort"

	"github.com/roomsathi/roomsathi/internal/geo"
	"github.com/roomsathi/roomsathi/internal/match"
	"github.com/roomsathi/roomsathi/internal/models"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/utils"
	"github.com/sirupsen/logrus"
)

// RankedListing pairs a listing with its match result and, when both sides
// have coordinates, the distance to the viewer. Distance is a separate
// ranking signal; it never feeds the score.
type RankedListing struct {
	Listing    models.Listing `json:"listing"`
	Match      match.Result   `json:"match"`
	DistanceKm *float64       `json:"distance_km,omitempty"`
}

type RankedRequest struct {
	Request    models.RoomRequest `json:"request"`
	Match      match.Result       `json:"match"`
	DistanceKm *float64           `json:"distance_km,omitempty"`
}

type MatchService interface {
	RankListings(ctx context.Context, seekerID, city string, viewer *geo.Coordinates, limit int) ([]RankedListing, error)
	RankRequests(ctx context.Context, seekerID, city string, viewer *geo.Coordinates, limit int) ([]RankedRequest, error)
}

type matchService struct {
	profiles ProfileService
	listings pgrepo.ListingRepository
	requests pgrepo.RequestRepository
	hints    pgrepo.ProfileRepository
	locator  geo.Locator
	log      *logrus.Logger
}

func NewMatchService(profiles ProfileService, listings pgrepo.ListingRepository, requests pgrepo.RequestRepository, hints pgrepo.ProfileRepository, locator geo.Locator, log *logrus.Logger) MatchService {
	return &matchService{
		profiles: profiles,
		listings: listings,
		requests: requests,
		hints:    hints,
		locator:  locator,
		log:      log,
	}
}

func seekerFromProfile(p *models.Profile) match.Seeker {
	return match.Seeker{
		City:         p.City,
		HomeDistrict: p.HomeDistrict,
		College:      p.College,
		Company:      p.Company,
		Gender:       p.Gender,
	}
}

// posterHints copies the candidate owner's profile fields the scorer reads.
// A missing owner profile just means no hints.
func posterHints(c *match.Candidate, owners map[string]models.Profile, ownerID string) {
	owner, ok := owners[ownerID]
	if !ok {
		return
	}
	c.PosterHomeDistrict = owner.HomeDistrict
	c.PosterCollege = owner.College
	c.PosterCompany = owner.Company
}

// resolveViewer returns explicit coordinates when the client sent them, or
// falls back to one best-effort locator attempt.
func (s *matchService) resolveViewer(ctx context.Context, viewer *geo.Coordinates) *geo.Coordinates {
	if viewer != nil {
		return viewer
	}
	if s.locator == nil {
		return nil
	}
	return s.locator.Current(ctx)
}

func distanceTo(viewer *geo.Coordinates, lat, lon *float64) *float64 {
	if viewer == nil || lat == nil || lon == nil {
		return nil
	}
	d := geo.DistanceKm(viewer.Latitude, viewer.Longitude, *lat, *lon)
	return &d
}

// rankLess orders by score descending, then by distance ascending with
// known-distance entries ahead of unknown ones, then newest first via the
// caller's pre-sorted input (sort is stable).
func rankLess(scoreI, scoreJ int, distI, distJ *float64) bool {
	if scoreI != scoreJ {
		return scoreI > scoreJ
	}
	switch {
	case distI != nil && distJ != nil:
		return *distI < *distJ
	case distI != nil:
		return true
	default:
		return false
	}
}

func (s *matchService) RankListings(ctx context.Context, seekerID, city string, viewer *geo.Coordinates, limit int) ([]RankedListing, error) {
	const op = "MatchService.RankListings"

	profile, err := s.profiles.Get(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	seeker := seekerFromProfile(profile)

	if city == "" {
		city = profile.City
	}

	listings, err := s.listings.ListOpenByCity(ctx, city, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load candidates", err)
	}

	ownerIDs := make([]string, 0, len(listings))
	for _, l := range listings {
		if l.OwnerID != seekerID {
			ownerIDs = append(ownerIDs, l.OwnerID)
		}
	}
	owners, err := s.hints.GetByUserIDs(ctx, ownerIDs)
	if err != nil {
		// hints are bonus signal only
		s.log.WithError(err).Warn("poster hint lookup failed")
		owners = map[string]models.Profile{}
	}

	viewerCoords := s.resolveViewer(ctx, viewer)

	out := make([]RankedListing, 0, len(listings))
	for _, l := range listings {
		if l.OwnerID == seekerID {
			continue
		}

		candidate := match.Candidate{
			City:             l.City,
			Location:         l.Location,
			GenderPreference: l.GenderPreference,
		}
		posterHints(&candidate, owners, l.OwnerID)

		out = append(out, RankedListing{
			Listing:    l,
			Match:      match.Score(seeker, candidate),
			DistanceKm: distanceTo(viewerCoords, l.Latitude, l.Longitude),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i].Match.Score, out[j].Match.Score, out[i].DistanceKm, out[j].DistanceKm)
	})
	return out, nil
}

func (s *matchService) RankRequests(ctx context.Context, seekerID, city string, viewer *geo.Coordinates, limit int) ([]RankedRequest, error) {
	const op = "MatchService.RankRequests"

	profile, err := s.profiles.Get(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	seeker := seekerFromProfile(profile)

	if city == "" {
		city = profile.City
	}

	requests, err := s.requests.ListOpenByCity(ctx, city, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load candidates", err)
	}

	ownerIDs := make([]string, 0, len(requests))
	for _, rr := range requests {
		if rr.OwnerID != seekerID {
			ownerIDs = append(ownerIDs, rr.OwnerID)
		}
	}
	owners, err := s.hints.GetByUserIDs(ctx, ownerIDs)
	if err != nil {
		s.log.WithError(err).Warn("poster hint lookup failed")
		owners = map[string]models.Profile{}
	}

	viewerCoords := s.resolveViewer(ctx, viewer)

	out := make([]RankedRequest, 0, len(requests))
	for _, rr := range requests {
		if rr.OwnerID == seekerID {
			continue
		}

		prefs := rr.Preferences.Data()
		candidate := match.Candidate{
			City:        rr.City,
			Location:    rr.Location,
			Preferences: &match.CandidatePrefs{GenderPreference: prefs.GenderPreference},
		}
		posterHints(&candidate, owners, rr.OwnerID)

		// requests have no geocoded address; use the owner's profile
		// coordinates when present
		var lat, lon *float64
		if owner, ok := owners[rr.OwnerID]; ok {
			lat, lon = owner.Latitude, owner.Longitude
		}

		out = append(out, RankedRequest{
			Request:    rr,
			Match:      match.Score(seeker, candidate),
			DistanceKm: distanceTo(viewerCoords, lat, lon),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i].Match.Score, out[j].Match.Score, out[i].DistanceKm, out[j].DistanceKm)
	})
	return out, nil
}
