package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAllCriteriaMatch(t *testing.T) {
	seeker := Seeker{
		City:         "Mumbai",
		HomeDistrict: "Jaipur",
		College:      "IIT Mumbai",
		Gender:       "male",
	}
	candidate := Candidate{
		City:               "Mumbai",
		Location:           "Powai",
		GenderPreference:   "any",
		PosterCollege:      "IIT Mumbai",
		PosterHomeDistrict: "Jaipur",
	}

	res := Score(seeker, candidate)

	assert.Equal(t, 90, res.Score)
	assert.Equal(t, "Excellent", res.Label)
	assert.Equal(t, "green", res.Color)
	assert.Equal(t, []string{"Same city", "Same hometown", "Same college", "Gender preference matches"}, res.Details)
}

func TestScoreNothingShared(t *testing.T) {
	seeker := Seeker{City: "Mumbai", HomeDistrict: "Jaipur", Gender: "male"}
	candidate := Candidate{
		City:             "Delhi",
		Location:         "Hauz Khas",
		GenderPreference: "female",
	}

	res := Score(seeker, candidate)

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, "Low", res.Label)
	assert.Equal(t, "gray", res.Color)
	assert.Empty(t, res.Details)
}

func TestScoreNearbyArea(t *testing.T) {
	seeker := Seeker{City: "Powai", Gender: "female"}
	candidate := Candidate{
		City:             "Mumbai",
		Location:         "Powai, Mumbai",
		GenderPreference: "female",
	}

	res := Score(seeker, candidate)

	assert.Equal(t, 30, res.Score)
	assert.Equal(t, []string{"Nearby area", "Gender preference matches"}, res.Details)
	assert.Equal(t, "Fair", res.Label)
	assert.Equal(t, "orange", res.Color)
}

func TestScoreCaseAndWhitespaceInsensitive(t *testing.T) {
	seeker := Seeker{City: "  MUMBAI ", HomeDistrict: "jaipur", Company: "Acme Corp", Gender: "other"}
	candidate := Candidate{
		City:               "mumbai",
		PosterHomeDistrict: " Jaipur ",
		PosterCompany:      "ACME CORP",
		GenderPreference:   "ANY",
	}

	res := Score(seeker, candidate)

	assert.Equal(t, []string{"Same city", "Same hometown", "Same company", "Gender preference matches"}, res.Details)
	assert.Equal(t, 90, res.Score)
}

func TestScoreCompanyOnlyWhenCollegeAbsent(t *testing.T) {
	// A student profile must never pick up the company bucket, and a single
	// profile cannot double-dip both institutional criteria.
	seeker := Seeker{City: "Pune", College: "COEP", Company: "", Gender: "male"}
	candidate := Candidate{
		City:          "Pune",
		PosterCollege: "COEP",
		PosterCompany: "COEP", // same string, still only one bucket
	}

	res := Score(seeker, candidate)
	assert.Contains(t, res.Details, "Same college")
	assert.NotContains(t, res.Details, "Same company")
	assert.Equal(t, 40+20+10, res.Score)
}

func TestScoreRequestNestedPreference(t *testing.T) {
	seeker := Seeker{City: "Delhi", Gender: "female"}

	nested := Candidate{
		City:        "Delhi",
		Preferences: &CandidatePrefs{GenderPreference: "female"},
	}
	res := Score(seeker, nested)
	assert.Contains(t, res.Details, "Gender preference matches")

	// Absent preference everywhere defaults to "any".
	absent := Candidate{City: "Delhi"}
	res = Score(seeker, absent)
	assert.Contains(t, res.Details, "Gender preference matches")

	// Nested conflict withholds the bonus but contributes no reason.
	conflict := Candidate{
		City:        "Delhi",
		Preferences: &CandidatePrefs{GenderPreference: "male"},
	}
	res = Score(seeker, conflict)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, []string{"Same city"}, res.Details)
}

func TestScoreEmptySeekerCityDoesNotMatchEmptyCandidate(t *testing.T) {
	res := Score(Seeker{}, Candidate{GenderPreference: "male"})
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Details)
}

func TestScoreBounds(t *testing.T) {
	seekers := []Seeker{
		{},
		{City: "Mumbai"},
		{City: "Mumbai", HomeDistrict: "Jaipur", College: "IIT Mumbai", Gender: "male"},
		{City: "Mumbai", HomeDistrict: "Jaipur", Company: "TCS", Gender: "female"},
	}
	candidates := []Candidate{
		{},
		{City: "Mumbai", Location: "Powai"},
		{City: "Delhi", GenderPreference: "female"},
		{City: "Mumbai", Location: "Powai", GenderPreference: "any", PosterCollege: "IIT Mumbai", PosterCompany: "TCS", PosterHomeDistrict: "Jaipur"},
	}

	for _, s := range seekers {
		for _, c := range candidates {
			res := Score(s, c)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
		}
	}
}

func TestScoreMonotonicOverCriteriaSubsets(t *testing.T) {
	seeker := Seeker{City: "Mumbai", HomeDistrict: "Jaipur", College: "IIT Mumbai", Gender: "male"}

	full := Candidate{
		City:               "Mumbai",
		GenderPreference:   "any",
		PosterCollege:      "IIT Mumbai",
		PosterHomeDistrict: "Jaipur",
	}

	// Drop one criterion at a time; each subset must score strictly less
	// than the full match and tier no higher.
	subsets := []Candidate{
		{City: "Mumbai", GenderPreference: "any", PosterCollege: "IIT Mumbai"},
		{City: "Mumbai", GenderPreference: "any", PosterHomeDistrict: "Jaipur"},
		{City: "Mumbai", PosterCollege: "IIT Mumbai", PosterHomeDistrict: "Jaipur", GenderPreference: "female"},
		{GenderPreference: "any", PosterCollege: "IIT Mumbai", PosterHomeDistrict: "Jaipur"},
	}

	fullScore := Score(seeker, full).Score
	for _, c := range subsets {
		assert.Less(t, Score(seeker, c).Score, fullScore)
	}
}

func TestScoreDeterministic(t *testing.T) {
	seeker := Seeker{City: "Mumbai", HomeDistrict: "Jaipur", College: "IIT Mumbai", Gender: "male"}
	candidate := Candidate{
		City:               "Mumbai",
		Location:           "Powai",
		GenderPreference:   "any",
		PosterCollege:      "IIT Mumbai",
		PosterHomeDistrict: "Jaipur",
	}

	first := Score(seeker, candidate)
	second := Score(seeker, candidate)
	require.Equal(t, first, second)
}

func TestTierIsPureFunctionOfScore(t *testing.T) {
	cases := []struct {
		score int
		label string
		color string
	}{
		{0, "Low", "gray"},
		{19, "Low", "gray"},
		{20, "Fair", "orange"},
		{44, "Fair", "orange"},
		{45, "Good", "yellow"},
		{69, "Good", "yellow"},
		{70, "Excellent", "green"},
		{100, "Excellent", "green"},
	}
	for _, tc := range cases {
		label, color := Tier(tc.score)
		assert.Equal(t, tc.label, label, "score %d", tc.score)
		assert.Equal(t, tc.color, color, "score %d", tc.score)
	}
}
