package model

import "sort"

// Question представляет вопрос персонального теста
type Question struct {
	ID                 int64    `json:"id"`
	PersonalizedTestID int64    `json:"personalized_test_id"`
	Prompt             string   `json:"prompt"`
	Order              int      `json:"order"`
	Options            []Option `json:"options,omitempty"`
}

// Option вариант ответа на вопрос
type Option struct {
	ID          int64  `json:"id"`
	QuestionID  int64  `json:"question_id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// SortQuestions упорядочивает вопросы и их варианты по order, при равенстве по ID
func SortQuestions(questions []Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Order != questions[j].Order {
			return questions[i].Order < questions[j].Order
		}
		return questions[i].ID < questions[j].ID
	})
	for i := range questions {
		opts := questions[i].Options
		sort.SliceStable(opts, func(a, b int) bool {
			if opts[a].Order != opts[b].Order {
				return opts[a].Order < opts[b].Order
			}
			return opts[a].ID < opts[b].ID
		})
	}
}
