package services

import (
	"fmt"
	"sort"
	"time"

	"bloodbridge_backend/internal/logger"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/internal/services/dto"
)

// Слагаемые приоритетного балла донора.
const (
	scoreBase = 100

	scoreStateMatch = 20

	scoreNeverDonated   = 25
	scoreDonatedOver90d = 30
	scoreDonatedOver60d = 20
	scoreDonatedOver30d = 10

	scorePreferredAge    = 15
	scorePreferredWeight = 10
)

type MatchingService interface {
	// Core matching operations
	FindMatchingDonors(request *models.BloodRequest, opts repositories.MatchOptions) ([]models.Donor, string, error)
	GetPrioritizedDonors(request *models.BloodRequest) (*dto.MatchSummary, error)
	CalculateDonorScore(donor *models.Donor, request *models.BloodRequest, now time.Time) int

	// Eligibility
	IsDonorEligible(donor *models.Donor, now time.Time) *dto.EligibilityCheck

	// Statistics
	GetDonorStatistics(city, state string) (*dto.DonorStatistics, error)
}

type matchingService struct {
	donorRepo   repositories.DonorRepository
	requestRepo repositories.BloodRequestRepository
}

func NewMatchingService(
	donorRepo repositories.DonorRepository,
	requestRepo repositories.BloodRequestRepository,
) MatchingService {
	return &matchingService{
		donorRepo:   donorRepo,
		requestRepo: requestRepo,
	}
}

// -------------------------------
// Core matching operations
// -------------------------------

// FindMatchingDonors ищет пригодных доноров в городе запроса.
// Если в городе никого нет, поиск расширяется на регион (state).
// Возвращает доноров и область поиска: "city" либо "state".
func (s *matchingService) FindMatchingDonors(request *models.BloodRequest, opts repositories.MatchOptions) ([]models.Donor, string, error) {
	now := time.Now()

	donors, err := s.donorRepo.FindEligibleDonorsByCity(request.BloodGroup, request.City, now, opts)
	if err != nil {
		return nil, "", err
	}

	// Расширение области только при пустом результате по городу
	if len(donors) == 0 && request.State != "" {
		donors, err = s.donorRepo.FindEligibleDonorsByState(request.BloodGroup, request.State, now, opts)
		if err != nil {
			return nil, "", err
		}
		return donors, "state", nil
	}

	return donors, "city", nil
}

// GetPrioritizedDonors возвращает подходящих доноров, отсортированных
// по убыванию балла. Сортировка стабильная: при равных баллах
// сохраняется порядок выдачи из хранилища.
func (s *matchingService) GetPrioritizedDonors(request *models.BloodRequest) (*dto.MatchSummary, error) {
	donors, scope, err := s.FindMatchingDonors(request, repositories.DefaultMatchOptions())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]*dto.MatchResult, 0, len(donors))
	for i := range donors {
		results = append(results, &dto.MatchResult{
			Donor: dto.NewDonorResponse(&donors[i]),
			Score: s.CalculateDonorScore(&donors[i], request, now),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logger.Info("donor matching completed",
		"request_id", request.ID,
		"scope", scope,
		"matched", len(results),
	)

	return &dto.MatchSummary{
		RequestID:    request.ID,
		Scope:        scope,
		TotalMatched: len(results),
		Results:      results,
	}, nil
}

// CalculateDonorScore считает приоритетный балл донора для запроса.
// База 100, бонусы за совпадение региона, давность последней донации,
// предпочтительный возраст и вес.
func (s *matchingService) CalculateDonorScore(donor *models.Donor, request *models.BloodRequest, now time.Time) int {
	score := scoreBase

	if donor.State != "" && donor.State == request.State {
		score += scoreStateMatch
	}

	if donor.LastDonationDate == nil {
		score += scoreNeverDonated
	} else {
		days := daysSince(*donor.LastDonationDate, now)
		switch {
		case days > 90:
			score += scoreDonatedOver90d
		case days > 60:
			score += scoreDonatedOver60d
		case days > 30:
			score += scoreDonatedOver30d
		}
	}

	if donor.Age >= 25 && donor.Age <= 45 {
		score += scorePreferredAge
	}

	if donor.Weight >= 50 && donor.Weight <= 100 {
		score += scorePreferredWeight
	}

	return score
}

// daysSince - полных суток между t и now
func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// -------------------------------
// Eligibility
// -------------------------------

// IsDonorEligible - чистая проверка пригодности донора к донации.
// Границы включительные: возраст 18-65, вес от 50 кг,
// пауза от 90 полных суток после последней донации.
func (s *matchingService) IsDonorEligible(donor *models.Donor, now time.Time) *dto.EligibilityCheck {
	check := &dto.EligibilityCheck{Eligible: true}

	fail := func(reason string) {
		check.Eligible = false
		check.Reasons = append(check.Reasons, reason)
	}

	if !donor.Available {
		fail("donor is marked as unavailable")
	}

	if donor.Age < repositories.MinDonorAge || donor.Age > repositories.MaxDonorAge {
		fail(fmt.Sprintf("age must be between %d and %d", repositories.MinDonorAge, repositories.MaxDonorAge))
	}

	if donor.Weight < repositories.MinDonorWeight {
		fail(fmt.Sprintf("weight must be at least %.0f kg", repositories.MinDonorWeight))
	}

	if donor.LastDonationDate != nil {
		if daysSince(*donor.LastDonationDate, now) < repositories.DonationCooldownDays {
			next := donor.LastDonationDate.AddDate(0, 0, repositories.DonationCooldownDays)
			check.NextEligibleDate = &next
			fail(fmt.Sprintf("last donation was less than %d days ago", repositories.DonationCooldownDays))
		}
	}

	return check
}

// -------------------------------
// Statistics
// -------------------------------

// GetDonorStatistics - сводка по реестру. Пустые city/state дают
// статистику по всему реестру, непустые сужают до области.
func (s *matchingService) GetDonorStatistics(city, state string) (*dto.DonorStatistics, error) {
	filter := repositories.DonorStatsFilter{City: city, State: state}
	now := time.Now()

	total, err := s.donorRepo.CountDonors(filter)
	if err != nil {
		return nil, err
	}

	available, err := s.donorRepo.CountAvailableDonors(filter)
	if err != nil {
		return nil, err
	}

	recent, err := s.donorRepo.CountRecentlyDonated(filter, now)
	if err != nil {
		return nil, err
	}

	eligible, err := s.donorRepo.CountEligibleDonors(filter, now)
	if err != nil {
		return nil, err
	}

	byGroup, err := s.donorRepo.CountDonorsByBloodGroup(filter)
	if err != nil {
		return nil, err
	}

	byCity, err := s.donorRepo.CountDonorsByCity(filter)
	if err != nil {
		return nil, err
	}

	activeRequests, err := s.requestRepo.CountActiveBloodRequests()
	if err != nil {
		return nil, err
	}

	groups := make(map[string]int64, len(byGroup))
	for group, count := range byGroup {
		groups[string(group)] = count
	}

	return &dto.DonorStatistics{
		TotalDonors:     total,
		AvailableDonors: available,
		RecentDonors:    recent,
		EligibleDonors:  eligible,
		ByBloodGroup:    groups,
		ByCity:          byCity,
		ActiveRequests:  activeRequests,
	}, nil
}
