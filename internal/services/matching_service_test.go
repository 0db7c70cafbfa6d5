package services

import (
	"testing"
	"time"

	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchingService(t *testing.T) (MatchingService, *testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	return NewMatchingService(repos.donors, repos.requests), repos
}

func TestFindMatchingDonors_FilterCriteria(t *testing.T) {
	svc, repos := newMatchingService(t)

	eligible := makeDonor()
	excluded := []*models.Donor{
		makeDonor(func(d *models.Donor) { d.BloodGroup = models.BloodGroupAPositive }),
		makeDonor(func(d *models.Donor) { d.City = "Chittagong" }),
		makeDonor(func(d *models.Donor) { d.Available = false }),
		makeDonor(func(d *models.Donor) { d.Age = 17 }),
		makeDonor(func(d *models.Donor) { d.Age = 66 }),
		makeDonor(func(d *models.Donor) { d.Weight = 49 }),
		makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(30) }),
	}

	require.NoError(t, repos.donors.CreateDonor(eligible))
	for _, donor := range excluded {
		require.NoError(t, repos.donors.CreateDonor(donor))
	}

	donors, scope, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)

	assert.Equal(t, "city", scope)
	require.Len(t, donors, 1)
	assert.Equal(t, eligible.ID, donors[0].ID)
}

func TestFindMatchingDonors_InclusiveBounds(t *testing.T) {
	svc, repos := newMatchingService(t)

	boundary := []*models.Donor{
		makeDonor(func(d *models.Donor) { d.Age = 18 }),
		makeDonor(func(d *models.Donor) { d.Age = 65 }),
		makeDonor(func(d *models.Donor) { d.Weight = 50 }),
		makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(91) }),
	}
	for _, donor := range boundary {
		require.NoError(t, repos.donors.CreateDonor(donor))
	}

	donors, _, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)
	assert.Len(t, donors, 4, "boundary values must pass the filter")
}

func TestFindMatchingDonors_Ordering(t *testing.T) {
	svc, repos := newMatchingService(t)

	donatedRecently := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(100) })
	donatedLongAgo := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(300) })
	neverDonated := makeDonor()

	require.NoError(t, repos.donors.CreateDonor(donatedRecently))
	require.NoError(t, repos.donors.CreateDonor(donatedLongAgo))
	require.NoError(t, repos.donors.CreateDonor(neverDonated))

	donors, _, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)
	require.Len(t, donors, 3)

	// Никогда не сдававшие первыми, затем по возрастанию даты донации
	assert.Equal(t, neverDonated.ID, donors[0].ID)
	assert.Equal(t, donatedLongAgo.ID, donors[1].ID)
	assert.Equal(t, donatedRecently.ID, donors[2].ID)
}

func TestFindMatchingDonors_StateFallback(t *testing.T) {
	svc, repos := newMatchingService(t)

	stateDonor := makeDonor(func(d *models.Donor) {
		d.City = "Gazipur"
		d.State = "Dhaka"
	})
	require.NoError(t, repos.donors.CreateDonor(stateDonor))

	// В городе пусто: поиск расширяется на регион
	donors, scope, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)
	assert.Equal(t, "state", scope)
	require.Len(t, donors, 1)
	assert.Equal(t, stateDonor.ID, donors[0].ID)
}

func TestFindMatchingDonors_NoFallbackWhenCityHasMatches(t *testing.T) {
	svc, repos := newMatchingService(t)

	cityDonor := makeDonor()
	stateDonor := makeDonor(func(d *models.Donor) {
		d.City = "Gazipur"
		d.State = "Dhaka"
	})
	require.NoError(t, repos.donors.CreateDonor(cityDonor))
	require.NoError(t, repos.donors.CreateDonor(stateDonor))

	donors, scope, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)

	assert.Equal(t, "city", scope)
	require.Len(t, donors, 1, "state donors must not leak into a non-empty city result")
	assert.Equal(t, cityDonor.ID, donors[0].ID)
}

func TestFindMatchingDonors_NoFallbackWithoutState(t *testing.T) {
	svc, repos := newMatchingService(t)

	stateDonor := makeDonor(func(d *models.Donor) {
		d.City = "Gazipur"
		d.State = "Dhaka"
	})
	require.NoError(t, repos.donors.CreateDonor(stateDonor))

	request := makeRequest(func(r *models.BloodRequest) { r.State = "" })
	donors, scope, err := svc.FindMatchingDonors(request, repositories.DefaultMatchOptions())
	require.NoError(t, err)

	assert.Equal(t, "city", scope)
	assert.Empty(t, donors)
}

func TestFindMatchingDonors_RecencyExclusionDisabled(t *testing.T) {
	svc, repos := newMatchingService(t)

	recentDonor := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(10) })
	require.NoError(t, repos.donors.CreateDonor(recentDonor))

	donors, _, err := svc.FindMatchingDonors(makeRequest(), repositories.DefaultMatchOptions())
	require.NoError(t, err)
	assert.Empty(t, donors)

	opts := repositories.MatchOptions{ExcludeRecentDonors: false}
	donors, _, err = svc.FindMatchingDonors(makeRequest(), opts)
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, recentDonor.ID, donors[0].ID)
}

func TestCalculateDonorScore_RecencyBuckets(t *testing.T) {
	svc, _ := newMatchingService(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	request := makeRequest()

	cases := []struct {
		name     string
		lastDays *int
		want     int
	}{
		{"never donated", nil, 100 + 25 + 15 + 10},
		{"30 days ago", intPtr(30), 100 + 0 + 15 + 10},
		{"31 days ago", intPtr(31), 100 + 10 + 15 + 10},
		{"61 days ago", intPtr(61), 100 + 20 + 15 + 10},
		{"90 days ago", intPtr(90), 100 + 20 + 15 + 10},
		{"91 days ago", intPtr(91), 100 + 30 + 15 + 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			donor := makeDonor()
			if tc.lastDays != nil {
				last := now.AddDate(0, 0, -*tc.lastDays)
				donor.LastDonationDate = &last
			}
			assert.Equal(t, tc.want, svc.CalculateDonorScore(donor, request, now))
		})
	}
}

func TestCalculateDonorScore_StateAndBodyBonuses(t *testing.T) {
	svc, _ := newMatchingService(t)
	now := time.Now()
	request := makeRequest()

	// Совпадение региона
	donor := makeDonor(func(d *models.Donor) { d.State = "Dhaka" })
	assert.Equal(t, 100+20+25+15+10, svc.CalculateDonorScore(donor, request, now))

	// Пустой state донора не дает бонуса даже при пустом state запроса
	donor = makeDonor()
	emptyStateReq := makeRequest(func(r *models.BloodRequest) { r.State = "" })
	assert.Equal(t, 100+25+15+10, svc.CalculateDonorScore(donor, emptyStateReq, now))

	// Возраст вне предпочтительного диапазона
	donor = makeDonor(func(d *models.Donor) { d.Age = 24 })
	assert.Equal(t, 100+25+10, svc.CalculateDonorScore(donor, request, now))

	donor = makeDonor(func(d *models.Donor) { d.Age = 46 })
	assert.Equal(t, 100+25+10, svc.CalculateDonorScore(donor, request, now))

	// Вес вне предпочтительного диапазона
	donor = makeDonor(func(d *models.Donor) { d.Weight = 101 })
	assert.Equal(t, 100+25+15, svc.CalculateDonorScore(donor, request, now))
}

// Типовой сценарий: донор без донаций в городе запроса
func TestCalculateDonorScore_DhakaScenario(t *testing.T) {
	svc, repos := newMatchingService(t)

	donor := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(donor))

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	summary, err := svc.GetPrioritizedDonors(request)
	require.NoError(t, err)

	require.Equal(t, 1, summary.TotalMatched)
	assert.Equal(t, 150, summary.Results[0].Score)
	assert.Equal(t, donor.ID, summary.Results[0].Donor.ID)
}

func TestGetPrioritizedDonors_StableOrderOnTies(t *testing.T) {
	svc, repos := newMatchingService(t)

	// Оба никогда не сдавали и идентичны по баллам: порядок хранилища
	// (created_at по порядку вставки не влияет, важен порядок выдачи запроса)
	first := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(200) })
	second := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(150) })
	require.NoError(t, repos.donors.CreateDonor(first))
	require.NoError(t, repos.donors.CreateDonor(second))

	summary, err := svc.GetPrioritizedDonors(makeRequest())
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalMatched)

	// Баллы равны (оба >90 дней), порядок из хранилища сохранен:
	// более давняя донация первой
	assert.Equal(t, summary.Results[0].Score, summary.Results[1].Score)
	assert.Equal(t, first.ID, summary.Results[0].Donor.ID)
	assert.Equal(t, second.ID, summary.Results[1].Donor.ID)
}

func TestIsDonorEligible(t *testing.T) {
	svc, _ := newMatchingService(t)
	now := time.Now()

	assert.True(t, svc.IsDonorEligible(makeDonor(), now).Eligible)
	assert.True(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Age = 18 }), now).Eligible)
	assert.True(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Age = 65 }), now).Eligible)
	assert.True(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Weight = 50 }), now).Eligible)
	assert.True(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(91) }), now).Eligible)

	assert.False(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Available = false }), now).Eligible)
	assert.False(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Age = 17 }), now).Eligible)
	assert.False(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Age = 66 }), now).Eligible)
	assert.False(t, svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.Weight = 49 }), now).Eligible)

	recent := svc.IsDonorEligible(makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(10) }), now)
	assert.False(t, recent.Eligible)
	require.NotNil(t, recent.NextEligibleDate)
	assert.NotEmpty(t, recent.Reasons)
}

func TestGetDonorStatistics_AreaFilter(t *testing.T) {
	svc, repos := newMatchingService(t)

	dhakaEligible := makeDonor()
	dhakaRecent := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(10) })
	chittagong := makeDonor(func(d *models.Donor) {
		d.City = "Chittagong"
		d.BloodGroup = models.BloodGroupAPositive
	})
	for _, donor := range []*models.Donor{dhakaEligible, dhakaRecent, chittagong} {
		require.NoError(t, repos.donors.CreateDonor(donor))
	}

	require.NoError(t, repos.requests.CreateBloodRequest(makeRequest()))

	// Без фильтра: весь реестр
	stats, err := svc.GetDonorStatistics("", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalDonors)
	assert.EqualValues(t, 3, stats.AvailableDonors)
	assert.EqualValues(t, 1, stats.RecentDonors)
	assert.EqualValues(t, 2, stats.EligibleDonors)
	assert.EqualValues(t, 1, stats.ActiveRequests)
	assert.EqualValues(t, 2, stats.ByBloodGroup[string(models.BloodGroupONegative)])
	assert.EqualValues(t, 1, stats.ByCity["Chittagong"])

	// Фильтр по городу
	stats, err = svc.GetDonorStatistics("Dhaka", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalDonors)
	assert.EqualValues(t, 1, stats.EligibleDonors)
	assert.NotContains(t, stats.ByCity, "Chittagong")
}

func intPtr(v int) *int { return &v }
