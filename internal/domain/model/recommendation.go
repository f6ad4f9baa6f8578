package model

import (
	"sort"
	"time"
)

// CareerRecommendation рекомендация по профессии (одна на персональный тест)
type CareerRecommendation struct {
	ID                 int64         `json:"id"`
	PersonalizedTestID int64         `json:"personalized_test_id"`
	AdminID            *int64        `json:"admin_id,omitempty"`
	CareerName         string        `json:"career_name"`
	Summary            string        `json:"summary"`
	CreatedAt          time.Time     `json:"created_at"`
	Steps              []RoadmapStep `json:"steps"`
}

// RoadmapStep шаг дорожной карты. Order выводится в отчете как номер шага.
type RoadmapStep struct {
	ID               int64  `json:"id"`
	RecommendationID int64  `json:"recommendation_id"`
	Order            int    `json:"order"`
	Title            string `json:"title"`
	Description      string `json:"description"`
}

// SortedSteps возвращает копию шагов по возрастанию order
func (r CareerRecommendation) SortedSteps() []RoadmapStep {
	steps := make([]RoadmapStep, len(r.Steps))
	copy(steps, r.Steps)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})
	return steps
}
