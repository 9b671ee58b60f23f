package queue

import (
	"strings"
	"unicode/utf8"
)

// Answer keys read by the vendor priority scorer.
const (
	AnswerDailyCapacity = "daily_capacity"
	AnswerDelivery      = "delivery"
	AnswerCompliance    = "compliance"
	AnswerFoodType      = "food_type"
	AnswerLink          = "link"
)

const (
	MinPriorityScore = 0
	MaxPriorityScore = 10

	minFoodTypeLength = 12
)

var capacityScores = map[string]int{
	"1–10":  1,
	"11–30": 2,
	"31–60": 3,
	"60+":   3,
}

// VendorPriorityScore maps a vendor questionnaire to a score in [0, 10].
// Missing or malformed answers contribute 0; it never fails.
func VendorPriorityScore(answers Answers) int {
	total := capacityScore(answers) +
		deliveryScore(answers) +
		complianceScore(answers) +
		professionalismScore(answers)

	// The component maxima already sum to MaxPriorityScore.
	if total < MinPriorityScore {
		return MinPriorityScore
	}
	if total > MaxPriorityScore {
		return MaxPriorityScore
	}
	return total
}

// capacityScore: 0-3
func capacityScore(answers Answers) int {
	return capacityScores[strings.TrimSpace(answers.Str(AnswerDailyCapacity))]
}

// deliveryScore: 0-2
func deliveryScore(answers Answers) int {
	delivery := strings.TrimSpace(answers.Str(AnswerDelivery))
	switch {
	case delivery == "Yes":
		return 2
	case strings.HasPrefix(delivery, "Partner only"):
		return 1
	default:
		return 0
	}
}

// complianceScore: 0-3
func complianceScore(answers Answers) int {
	switch strings.TrimSpace(answers.Str(AnswerCompliance)) {
	case "Yes":
		return 3
	case "In progress":
		return 2
	default:
		return 0
	}
}

// professionalismScore: 0-2, one point per signal.
func professionalismScore(answers Answers) int {
	score := 0
	if utf8.RuneCountInString(strings.TrimSpace(answers.Str(AnswerFoodType))) >= minFoodTypeLength {
		score++
	}
	if strings.HasPrefix(strings.TrimSpace(answers.Str(AnswerLink)), "http") {
		score++
	}
	return score
}
