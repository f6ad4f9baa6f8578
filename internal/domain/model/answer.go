package model

import "time"

// StudentAnswer выбранный студентом вариант ответа. Уникален по паре (вопрос, студент).
type StudentAnswer struct {
	ID          int64     `json:"id"`
	QuestionID  int64     `json:"question_id"`
	OptionID    int64     `json:"option_id"`
	StudentID   int64     `json:"student_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}
