package dto

import "time"

// ========================
// Matching DTOs
// ========================

// MatchResult - донор с приоритетным баллом
type MatchResult struct {
	Donor *DonorResponse `json:"donor"`
	Score int            `json:"score"`
}

// MatchSummary - результат подбора доноров для запроса
type MatchSummary struct {
	RequestID    string         `json:"request_id"`
	Scope        string         `json:"scope"` // "city" или "state"
	TotalMatched int            `json:"total_matched"`
	Results      []*MatchResult `json:"results"`
}

// EligibilityCheck - проверка пригодности донора к донации
type EligibilityCheck struct {
	Eligible         bool       `json:"eligible"`
	Reasons          []string   `json:"reasons,omitempty"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty"`
}

// DispatchSummary - итог рассылки экстренных уведомлений
type DispatchSummary struct {
	Attempted int `json:"attempted"`
	Notified  int `json:"notified"`
}
