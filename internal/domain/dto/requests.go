package dto

// CreateTestRequestInput данные заявки студента на тест.
// Пустые поля заполняются из профиля студента.
type CreateTestRequestInput struct {
	Interests     string `json:"interests" validate:"max=2000"`
	Qualification string `json:"qualification" validate:"max=2000"`
}

// AssignTestInput состав персонального теста
type AssignTestInput struct {
	Questions []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// QuestionInput вопрос теста с вариантами ответа
type QuestionInput struct {
	Prompt  string        `json:"prompt" validate:"required"`
	Order   int           `json:"order"`
	Options []OptionInput `json:"options" validate:"required,min=1,dive"`
}

// OptionInput вариант ответа
type OptionInput struct {
	Label       string `json:"label" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// RecommendationInput рекомендация администратора с дорожной картой
type RecommendationInput struct {
	CareerName string      `json:"career_name" validate:"required,max=255"`
	Summary    string      `json:"summary" validate:"required"`
	Steps      []StepInput `json:"steps" validate:"unique=Order,dive"`
}

// StepInput шаг дорожной карты, Order выводится как номер шага
type StepInput struct {
	Order       int    `json:"order" validate:"min=1"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

// SubmitAnswerInput ответ студента на вопрос
type SubmitAnswerInput struct {
	QuestionID int64 `json:"question_id" validate:"required"`
	OptionID   int64 `json:"option_id" validate:"required"`
}

// RegisterUserInput данные нового пользователя
type RegisterUserInput struct {
	Email         string `json:"email" validate:"required,email"`
	FirstName     string `json:"first_name" validate:"max=100"`
	LastName      string `json:"last_name" validate:"max=100"`
	Role          string `json:"role" validate:"required,oneof=student admin"`
	Qualification string `json:"qualification" validate:"max=2000"`
	Interests     string `json:"interests" validate:"max=2000"`
}

// UpdateProfileInput изменяемые поля профиля
type UpdateProfileInput struct {
	Qualification string `json:"qualification" validate:"max=2000"`
	Interests     string `json:"interests" validate:"max=2000"`
}
