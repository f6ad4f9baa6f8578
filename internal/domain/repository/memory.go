package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/careerpath/internal/domain/errs"
	"github.com/IT-Nick/careerpath/internal/domain/model"
)

// MemoryStore in-memory реализация Store.
// Транзакции выполняются по очереди над копией данных; копия заменяет
// текущее состояние только при успешном завершении fn.
type MemoryStore struct {
	mu   sync.Mutex
	data *memData
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore создаёт новый MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemData()}
}

func (m *MemoryStore) InTx(ctx context.Context, fn func(q Queries) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	m.data = work
	return nil
}

type answerKey struct {
	questionID int64
	studentID  int64
}

type memData struct {
	seq             int64
	users           map[int64]model.User
	requests        map[int64]model.TestRequest
	tests           map[int64]model.PersonalizedTest
	questions       map[int64]model.Question
	options         map[int64]model.Option
	answers         map[answerKey]model.StudentAnswer
	recommendations map[int64]model.CareerRecommendation
	steps           map[int64]model.RoadmapStep
}

func newMemData() *memData {
	return &memData{
		users:           make(map[int64]model.User),
		requests:        make(map[int64]model.TestRequest),
		tests:           make(map[int64]model.PersonalizedTest),
		questions:       make(map[int64]model.Question),
		options:         make(map[int64]model.Option),
		answers:         make(map[answerKey]model.StudentAnswer),
		recommendations: make(map[int64]model.CareerRecommendation),
		steps:           make(map[int64]model.RoadmapStep),
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	c.seq = d.seq
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.requests {
		c.requests[k] = v
	}
	for k, v := range d.tests {
		c.tests[k] = copyTest(v)
	}
	for k, v := range d.questions {
		c.questions[k] = v
	}
	for k, v := range d.options {
		c.options[k] = v
	}
	for k, v := range d.answers {
		c.answers[k] = v
	}
	for k, v := range d.recommendations {
		c.recommendations[k] = copyRecommendation(v)
	}
	for k, v := range d.steps {
		c.steps[k] = v
	}
	return c
}

func (d *memData) nextID() int64 {
	d.seq++
	return d.seq
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTest(t model.PersonalizedTest) model.PersonalizedTest {
	t.AdminID = copyInt64(t.AdminID)
	t.AssignedAt = copyTime(t.AssignedAt)
	t.CompletedAt = copyTime(t.CompletedAt)
	t.Questions = nil
	return t
}

func copyRecommendation(r model.CareerRecommendation) model.CareerRecommendation {
	r.AdminID = copyInt64(r.AdminID)
	r.Steps = nil
	return r
}

func (d *memData) requireAdmin(adminID *int64) error {
	if adminID == nil {
		return nil
	}
	if _, ok := d.users[*adminID]; !ok {
		return errs.NotFound(EntityUser, *adminID)
	}
	return nil
}

// CreateUser сохраняет пользователя, e-mail уникален без учета регистра
func (d *memData) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range d.users {
		if strings.EqualFold(u.Email, user.Email) {
			return errs.Validation(errs.KindDuplicate, "user with email %s already exists", user.Email)
		}
	}
	user.ID = d.nextID()
	d.users[user.ID] = *user
	return nil
}

func (d *memData) GetUser(_ context.Context, id int64) (*model.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, errs.NotFound(EntityUser, id)
	}
	return &u, nil
}

func (d *memData) UpdateUserProfile(_ context.Context, id int64, qualification, interests string) error {
	u, ok := d.users[id]
	if !ok {
		return errs.NotFound(EntityUser, id)
	}
	u.Qualification = qualification
	u.Interests = interests
	d.users[id] = u
	return nil
}

// DeleteUser удаляет пользователя вместе с его заявками и ответами,
// ссылки на администратора в тестах и рекомендациях обнуляются
func (d *memData) DeleteUser(_ context.Context, id int64) error {
	if _, ok := d.users[id]; !ok {
		return errs.NotFound(EntityUser, id)
	}
	for reqID, req := range d.requests {
		if req.StudentID == id {
			d.deleteRequest(reqID)
		}
	}
	for key := range d.answers {
		if key.studentID == id {
			delete(d.answers, key)
		}
	}
	for testID, t := range d.tests {
		if t.AdminID != nil && *t.AdminID == id {
			t.AdminID = nil
			d.tests[testID] = t
		}
	}
	for recID, r := range d.recommendations {
		if r.AdminID != nil && *r.AdminID == id {
			r.AdminID = nil
			d.recommendations[recID] = r
		}
	}
	delete(d.users, id)
	return nil
}

func (d *memData) CreateTestRequest(_ context.Context, req *model.TestRequest) error {
	if _, ok := d.users[req.StudentID]; !ok {
		return errs.NotFound(EntityUser, req.StudentID)
	}
	req.ID = d.nextID()
	d.requests[req.ID] = *req
	return nil
}

func (d *memData) GetTestRequest(_ context.Context, id int64) (*model.TestRequest, error) {
	r, ok := d.requests[id]
	if !ok {
		return nil, errs.NotFound(EntityTestRequest, id)
	}
	return &r, nil
}

func (d *memData) UpdateTestRequestStatus(_ context.Context, id int64, status model.RequestStatus, at time.Time) error {
	r, ok := d.requests[id]
	if !ok {
		return errs.NotFound(EntityTestRequest, id)
	}
	r.Status = status
	r.UpdatedAt = at
	d.requests[id] = r
	return nil
}

func (d *memData) DeleteTestRequest(_ context.Context, id int64) error {
	if _, ok := d.requests[id]; !ok {
		return errs.NotFound(EntityTestRequest, id)
	}
	d.deleteRequest(id)
	return nil
}

func (d *memData) deleteRequest(id int64) {
	for testID, t := range d.tests {
		if t.RequestID == id {
			d.deleteTest(testID)
		}
	}
	delete(d.requests, id)
}

func (d *memData) deleteTest(id int64) {
	for qID, q := range d.questions {
		if q.PersonalizedTestID != id {
			continue
		}
		for optID, opt := range d.options {
			if opt.QuestionID == qID {
				delete(d.options, optID)
			}
		}
		for key := range d.answers {
			if key.questionID == qID {
				delete(d.answers, key)
			}
		}
		delete(d.questions, qID)
	}
	for recID, r := range d.recommendations {
		if r.PersonalizedTestID != id {
			continue
		}
		for stepID, s := range d.steps {
			if s.RecommendationID == recID {
				delete(d.steps, stepID)
			}
		}
		delete(d.recommendations, recID)
	}
	delete(d.tests, id)
}

func (d *memData) CreatePersonalizedTest(_ context.Context, test *model.PersonalizedTest) error {
	if _, ok := d.requests[test.RequestID]; !ok {
		return errs.NotFound(EntityTestRequest, test.RequestID)
	}
	if err := d.requireAdmin(test.AdminID); err != nil {
		return err
	}
	for _, t := range d.tests {
		if t.RequestID == test.RequestID {
			return errs.Validation(errs.KindDuplicate, "test request %d already has a personalized test", test.RequestID)
		}
	}
	test.ID = d.nextID()
	d.tests[test.ID] = copyTest(*test)
	return nil
}

func (d *memData) GetPersonalizedTest(_ context.Context, id int64) (*model.PersonalizedTest, error) {
	t, ok := d.tests[id]
	if !ok {
		return nil, errs.NotFound(EntityTest, id)
	}
	t = copyTest(t)
	return &t, nil
}

func (d *memData) GetPersonalizedTestByRequest(_ context.Context, requestID int64) (*model.PersonalizedTest, error) {
	for _, t := range d.tests {
		if t.RequestID == requestID {
			t = copyTest(t)
			return &t, nil
		}
	}
	return nil, errs.NotFound(EntityTest, requestID)
}

func (d *memData) UpdatePersonalizedTest(_ context.Context, test *model.PersonalizedTest) error {
	current, ok := d.tests[test.ID]
	if !ok {
		return errs.NotFound(EntityTest, test.ID)
	}
	current.Status = test.Status
	current.AdminID = copyInt64(test.AdminID)
	current.AssignedAt = copyTime(test.AssignedAt)
	current.CompletedAt = copyTime(test.CompletedAt)
	d.tests[test.ID] = current
	return nil
}

func (d *memData) CreateQuestion(_ context.Context, question *model.Question) error {
	if _, ok := d.tests[question.PersonalizedTestID]; !ok {
		return errs.NotFound(EntityTest, question.PersonalizedTestID)
	}
	question.ID = d.nextID()
	stored := *question
	stored.Options = nil
	d.questions[question.ID] = stored
	return nil
}

func (d *memData) CreateOption(_ context.Context, option *model.Option) error {
	if _, ok := d.questions[option.QuestionID]; !ok {
		return errs.NotFound(EntityQuestion, option.QuestionID)
	}
	option.ID = d.nextID()
	d.options[option.ID] = *option
	return nil
}

func (d *memData) GetQuestion(_ context.Context, id int64) (*model.Question, error) {
	q, ok := d.questions[id]
	if !ok {
		return nil, errs.NotFound(EntityQuestion, id)
	}
	return &q, nil
}

func (d *memData) GetOption(_ context.Context, id int64) (*model.Option, error) {
	o, ok := d.options[id]
	if !ok {
		return nil, errs.NotFound(EntityOption, id)
	}
	return &o, nil
}

func (d *memData) ListQuestions(_ context.Context, testID int64) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range d.questions {
		if q.PersonalizedTestID != testID {
			continue
		}
		for _, o := range d.options {
			if o.QuestionID == q.ID {
				q.Options = append(q.Options, o)
			}
		}
		questions = append(questions, q)
	}
	model.SortQuestions(questions)
	return questions, nil
}

// UpsertAnswer создает ответ или заменяет вариант существующего ответа той же пары (вопрос, студент)
func (d *memData) UpsertAnswer(_ context.Context, answer *model.StudentAnswer) error {
	if _, ok := d.questions[answer.QuestionID]; !ok {
		return errs.NotFound(EntityQuestion, answer.QuestionID)
	}
	if _, ok := d.options[answer.OptionID]; !ok {
		return errs.NotFound(EntityOption, answer.OptionID)
	}
	if _, ok := d.users[answer.StudentID]; !ok {
		return errs.NotFound(EntityUser, answer.StudentID)
	}
	key := answerKey{questionID: answer.QuestionID, studentID: answer.StudentID}
	if existing, ok := d.answers[key]; ok {
		answer.ID = existing.ID
	} else {
		answer.ID = d.nextID()
	}
	d.answers[key] = *answer
	return nil
}

func (d *memData) ListAnswers(_ context.Context, testID, studentID int64) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	for key, a := range d.answers {
		if key.studentID != studentID {
			continue
		}
		if q, ok := d.questions[key.questionID]; ok && q.PersonalizedTestID == testID {
			answers = append(answers, a)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers, nil
}

func (d *memData) CreateRecommendation(_ context.Context, rec *model.CareerRecommendation) error {
	if _, ok := d.tests[rec.PersonalizedTestID]; !ok {
		return errs.NotFound(EntityTest, rec.PersonalizedTestID)
	}
	if err := d.requireAdmin(rec.AdminID); err != nil {
		return err
	}
	for _, r := range d.recommendations {
		if r.PersonalizedTestID == rec.PersonalizedTestID {
			return errs.Validation(errs.KindDuplicate, "personalized test %d already has a recommendation", rec.PersonalizedTestID)
		}
	}
	rec.ID = d.nextID()
	d.recommendations[rec.ID] = copyRecommendation(*rec)
	return nil
}

func (d *memData) GetRecommendation(_ context.Context, id int64) (*model.CareerRecommendation, error) {
	r, ok := d.recommendations[id]
	if !ok {
		return nil, errs.NotFound(EntityRecommendation, id)
	}
	r = copyRecommendation(r)
	return &r, nil
}

func (d *memData) GetRecommendationByTest(_ context.Context, testID int64) (*model.CareerRecommendation, error) {
	for _, r := range d.recommendations {
		if r.PersonalizedTestID == testID {
			r = copyRecommendation(r)
			return &r, nil
		}
	}
	return nil, errs.NotFound(EntityRecommendation, testID)
}

func (d *memData) CreateRoadmapStep(_ context.Context, step *model.RoadmapStep) error {
	if _, ok := d.recommendations[step.RecommendationID]; !ok {
		return errs.NotFound(EntityRecommendation, step.RecommendationID)
	}
	step.ID = d.nextID()
	d.steps[step.ID] = *step
	return nil
}

func (d *memData) ListRoadmapSteps(_ context.Context, recommendationID int64) ([]model.RoadmapStep, error) {
	var steps []model.RoadmapStep
	for _, s := range d.steps {
		if s.RecommendationID == recommendationID {
			steps = append(steps, s)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Order != steps[j].Order {
			return steps[i].Order < steps[j].Order
		}
		return steps[i].ID < steps[j].ID
	})
	return steps, nil
}
