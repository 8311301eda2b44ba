// Package match computes compatibility scores between a seeker profile and a
// listing or room request. It is deliberately free of any storage or HTTP
// dependency: callers resolve all data (including the posting user's hints)
// before calling in.
package match

import "strings"

// Seeker is the slice of a user profile that matters for matching. College
// and Company are mutually exclusive in practice (student vs professional
// profiles) but both are treated as optional.
type Seeker struct {
	City         string
	HomeDistrict string
	College      string
	Company      string
	Gender       string // male | female | other
}

// CandidatePrefs mirrors the nested preferences block a room request carries.
type CandidatePrefs struct {
	GenderPreference string
}

// Candidate is a listing or room request flattened to the fields the scorer
// reads. Listings set GenderPreference at the top level; requests carry it
// inside Preferences. Poster hints come from the candidate owner's profile
// and are supplied by the caller when available.
type Candidate struct {
	City             string
	Location         string // free-text neighbourhood, may overlap with City
	GenderPreference string
	Preferences      *CandidatePrefs

	PosterHomeDistrict string
	PosterCollege      string
	PosterCompany      string
}

// Result is the scorer's output. Details lists the criteria that fired, in
// evaluation order; it is empty when nothing matched.
type Result struct {
	Score   int      `json:"score"`
	Label   string   `json:"label"`
	Color   string   `json:"color"`
	Details []string `json:"details"`
}

// Point buckets per criterion. Chosen so that any strict superset of matched
// criteria outscores its subsets and a full match lands in the top tier.
const (
	pointsSameCity    = 40
	pointsNearbyArea  = 20
	pointsHometown    = 20
	pointsInstitution = 20
	pointsGender      = 10
)

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func equalFold(a, b string) bool {
	a, b = norm(a), norm(b)
	return a != "" && a == b
}

func containsFold(a, b string) bool {
	a, b = norm(a), norm(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// genderPreference resolves the candidate's effective preference: top-level
// field first, then the nested request preferences, defaulting to "any".
func (c Candidate) genderPreference() string {
	if p := norm(c.GenderPreference); p != "" {
		return p
	}
	if c.Preferences != nil {
		if p := norm(c.Preferences.GenderPreference); p != "" {
			return p
		}
	}
	return "any"
}

// Score computes a 0-100 compatibility score. Pure and deterministic:
// identical inputs yield identical output, including Details order. Missing
// optional fields skip their criterion; nothing here ever fails.
func Score(seeker Seeker, candidate Candidate) Result {
	score := 0
	details := []string{}

	// Location carries the highest weight. Exact city match wins outright;
	// otherwise fall back to fuzzy containment between the seeker's city and
	// the candidate's free-text area.
	switch {
	case equalFold(seeker.City, candidate.City):
		score += pointsSameCity
		details = append(details, "Same city")
	case containsFold(seeker.City, candidate.Location):
		score += pointsNearbyArea
		details = append(details, "Nearby area")
	}

	if equalFold(seeker.HomeDistrict, candidate.PosterHomeDistrict) {
		score += pointsHometown
		details = append(details, "Same hometown")
	}

	// A profile is either student or professional, so at most one fires.
	if seeker.College != "" && equalFold(seeker.College, candidate.PosterCollege) {
		score += pointsInstitution
		details = append(details, "Same college")
	} else if seeker.Company != "" && equalFold(seeker.Company, candidate.PosterCompany) {
		score += pointsInstitution
		details = append(details, "Same company")
	}

	// A conflicting gender preference only withholds the bonus. Filtering is
	// the caller's job, not the scorer's.
	if pref := candidate.genderPreference(); pref == "any" || pref == norm(seeker.Gender) {
		score += pointsGender
		details = append(details, "Gender preference matches")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	label, color := Tier(score)
	return Result{Score: score, Label: label, Color: color, Details: details}
}

// Tier maps a clamped score to its qualitative label and display color.
// Monotonic in score and independent of which criteria produced it.
func Tier(score int) (label, color string) {
	switch {
	case score >= 70:
		return "Excellent", "green"
	case score >= 45:
		return "Good", "yellow"
	case score >= 20:
		return "Fair", "orange"
	default:
		return "Low", "gray"
	}
}
