package models

// BloodGroup - одна из 8 комбинаций ABO/Rh
type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A_POSITIVE"
	BloodGroupANegative  BloodGroup = "A_NEGATIVE"
	BloodGroupBPositive  BloodGroup = "B_POSITIVE"
	BloodGroupBNegative  BloodGroup = "B_NEGATIVE"
	BloodGroupABPositive BloodGroup = "AB_POSITIVE"
	BloodGroupABNegative BloodGroup = "AB_NEGATIVE"
	BloodGroupOPositive  BloodGroup = "O_POSITIVE"
	BloodGroupONegative  BloodGroup = "O_NEGATIVE"
)

// UrgencyLevel - степень срочности запроса (CRITICAL > HIGH > MEDIUM > LOW)
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "CRITICAL"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyLow      UrgencyLevel = "LOW"
)

var bloodGroupLabels = map[BloodGroup]string{
	BloodGroupAPositive:  "A+",
	BloodGroupANegative:  "A-",
	BloodGroupBPositive:  "B+",
	BloodGroupBNegative:  "B-",
	BloodGroupABPositive: "AB+",
	BloodGroupABNegative: "AB-",
	BloodGroupOPositive:  "O+",
	BloodGroupONegative:  "O-",
}

// urgencyRank - чем больше значение, тем выше срочность
var urgencyRank = map[UrgencyLevel]int{
	UrgencyLow:      1,
	UrgencyMedium:   2,
	UrgencyHigh:     3,
	UrgencyCritical: 4,
}

func (g BloodGroup) IsValid() bool {
	_, ok := bloodGroupLabels[g]
	return ok
}

// Label возвращает человекочитаемое обозначение группы крови ("A_POSITIVE" -> "A+")
func (g BloodGroup) Label() string {
	if label, ok := bloodGroupLabels[g]; ok {
		return label
	}
	return string(g)
}

func (u UrgencyLevel) IsValid() bool {
	_, ok := urgencyRank[u]
	return ok
}

// Rank возвращает численную степень срочности для сортировки
func (u UrgencyLevel) Rank() int {
	return urgencyRank[u]
}

// AllBloodGroups возвращает все допустимые группы крови
func AllBloodGroups() []BloodGroup {
	return []BloodGroup{
		BloodGroupAPositive, BloodGroupANegative,
		BloodGroupBPositive, BloodGroupBNegative,
		BloodGroupABPositive, BloodGroupABNegative,
		BloodGroupOPositive, BloodGroupONegative,
	}
}
