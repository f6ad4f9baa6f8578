package model

import "time"

// RequestStatus статус заявки студента на тест
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in_progress"
	RequestAssigned   RequestStatus = "assigned"
	RequestCompleted  RequestStatus = "completed"
)

var requestRank = map[RequestStatus]int{
	RequestPending:    0,
	RequestInProgress: 1,
	RequestAssigned:   2,
	RequestCompleted:  3,
}

// CanAdvanceTo сообщает, разрешен ли переход заявки в статус next.
// Переходы возможны только вперед.
func (s RequestStatus) CanAdvanceTo(next RequestStatus) bool {
	from, ok := requestRank[s]
	if !ok {
		return false
	}
	to, ok := requestRank[next]
	if !ok {
		return false
	}
	return to > from
}

// TestRequest заявка студента на персональный тест.
// Снимки интересов и квалификации не меняются при правке профиля.
type TestRequest struct {
	ID                    int64         `json:"id"`
	StudentID             int64         `json:"student_id"`
	InterestsSnapshot     string        `json:"interests_snapshot"`
	QualificationSnapshot string        `json:"qualification_snapshot"`
	Status                RequestStatus `json:"status"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// TestStatus статус персонального теста
type TestStatus string

const (
	TestDraft     TestStatus = "draft"
	TestAssigned  TestStatus = "assigned"
	TestCompleted TestStatus = "completed"
)

// PersonalizedTest тест, составленный администратором по заявке (один на заявку)
type PersonalizedTest struct {
	ID          int64      `json:"id"`
	RequestID   int64      `json:"request_id"`
	AdminID     *int64     `json:"admin_id,omitempty"`
	Status      TestStatus `json:"status"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}
