package service

import (
	"errors"
	"time"

	"github.com/quizdesk/classroom/internal/model"
	"gorm.io/gorm"
)

// Hand-written repository fakes backed by maps. They emulate just enough
// gorm behavior (record-not-found, id assignment, the enrollment unique
// index) for the service tests.

type fakeCourseRepo struct {
	courses map[string]*model.Course
}

func newFakeCourseRepo(courses ...*model.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[string]*model.Course{}}
	for _, c := range courses {
		r.courses[c.Slug] = c
	}
	return r
}

func (r *fakeCourseRepo) Create(course *model.Course) error {
	r.courses[course.Slug] = course
	return nil
}

func (r *fakeCourseRepo) FindByID(id uint) (*model.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCourseRepo) FindBySlug(slug string) (*model.Course, error) {
	if c, ok := r.courses[slug]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQuizRepo struct {
	quizzes map[string]*model.Quiz
	nextID  uint
}

func newFakeQuizRepo(quizzes ...*model.Quiz) *fakeQuizRepo {
	r := &fakeQuizRepo{quizzes: map[string]*model.Quiz{}, nextID: 100}
	for _, q := range quizzes {
		r.quizzes[q.UUID] = q
	}
	return r
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.nextID++
	quiz.ID = r.nextID
	for i := range quiz.Questions {
		r.nextID++
		quiz.Questions[i].ID = r.nextID
		quiz.Questions[i].QuizID = quiz.ID
	}
	r.quizzes[quiz.UUID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByUUID(uuid string) (*model.Quiz, error) {
	if q, ok := r.quizzes[uuid]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuizRepo) FindByUUIDWithQuestions(uuid string) (*model.Quiz, error) {
	return r.FindByUUID(uuid)
}

type fakeSessionRepo struct {
	sessions map[uint]*model.QuizSession
	quiz     *model.Quiz
	nextID   uint
	// missReads makes the next n FindByUserAndQuiz calls miss, emulating a
	// concurrent enroll whose insert has not committed at read time.
	missReads int
}

func newFakeSessionRepo(quiz *model.Quiz) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uint]*model.QuizSession{}, quiz: quiz}
}

// hydrate emulates the Preloads of FindByIDWithDetails.
func (r *fakeSessionRepo) hydrate(s *model.QuizSession) {
	if r.quiz == nil || s.QuizID != r.quiz.ID {
		return
	}
	s.Quiz = *r.quiz
	for i := range s.EnrolledQuestions {
		for _, q := range r.quiz.Questions {
			if q.ID == s.EnrolledQuestions[i].QuestionID {
				s.EnrolledQuestions[i].Question = q
			}
		}
	}
}

func (r *fakeSessionRepo) Create(session *model.QuizSession) error {
	// The partial unique (user_id, quiz_id) index.
	for _, s := range r.sessions {
		if s.UserID == session.UserID && s.QuizID == session.QuizID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	session.ID = r.nextID
	if session.CreatedAt.IsZero() {
		session.CreatedAt = nowFunc()
	}
	for i := range session.EnrolledQuestions {
		r.nextID++
		session.EnrolledQuestions[i].ID = r.nextID
		session.EnrolledQuestions[i].SessionID = session.ID
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindByUserAndQuiz(userID, quizID uint) (*model.QuizSession, error) {
	if r.missReads > 0 {
		r.missReads--
		return nil, gorm.ErrRecordNotFound
	}
	for _, s := range r.sessions {
		if s.UserID == userID && s.QuizID == quizID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindByID(id uint) (*model.QuizSession, error) {
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindByIDWithDetails(id uint) (*model.QuizSession, error) {
	s, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	r.hydrate(s)
	return s, nil
}

func (r *fakeSessionRepo) FindEnrolledQuestion(sessionID, questionID uint) (*model.QuizEnrolledQuestion, error) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.hydrate(s)
	for i := range s.EnrolledQuestions {
		if s.EnrolledQuestions[i].QuestionID == questionID {
			return &s.EnrolledQuestions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) UpdateEnrolledAnswer(eq *model.QuizEnrolledQuestion) error {
	s, ok := r.sessions[eq.SessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range s.EnrolledQuestions {
		if s.EnrolledQuestions[i].ID == eq.ID {
			s.EnrolledQuestions[i].Answer = eq.Answer
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) MarkEnded(id uint, score float64) (int64, error) {
	s, ok := r.sessions[id]
	if !ok || s.IsEnded {
		return 0, nil
	}
	s.IsEnded = true
	s.Score = &score
	return 1, nil
}

func (r *fakeSessionRepo) FindAllByQuiz(quizID uint) ([]model.QuizSession, error) {
	var out []model.QuizSession
	for _, s := range r.sessions {
		if s.QuizID == quizID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindActiveWithQuiz() ([]model.QuizSession, error) {
	var out []model.QuizSession
	for _, s := range r.sessions {
		if !s.IsEnded {
			r.hydrate(s)
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) DeleteWithAnswers(id uint) error {
	delete(r.sessions, id)
	return nil
}

type enrollmentKey struct {
	userID   uint
	courseID uint
}

type fakeOrderRepo struct {
	orders      map[string]*model.Order
	discounts   map[uint]*model.CourseDiscount
	enrollments map[enrollmentKey]int
	nextID      uint
	deleted     []uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:      map[string]*model.Order{},
		discounts:   map[uint]*model.CourseDiscount{},
		enrollments: map[enrollmentKey]int{},
	}
}

func (r *fakeOrderRepo) CreatePending(order *model.Order, course *model.Course, now time.Time) error {
	order.TotalPrice, order.TotalDiscount = model.PriceWithDiscount(course, r.discounts[course.ID], now)
	r.nextID++
	order.ID = r.nextID
	r.orders[order.UUID] = order
	return nil
}

func (r *fakeOrderRepo) FindByUUID(uuid string) (*model.Order, error) {
	if o, ok := r.orders[uuid]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) UpdateGatewayInfo(id uint, gatewayID, checkoutURL string) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.GatewayID = &gatewayID
			o.CheckoutURL = &checkoutURL
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) Delete(id uint) error {
	for uuid, o := range r.orders {
		if o.ID == id {
			delete(r.orders, uuid)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) ReconcileStatus(order *model.Order, newStatus string) error {
	stored, ok := r.orders[order.UUID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Forward-only, like the conditional UPDATE: terminal statuses stay.
	if stored.Status != model.OrderStatusPending {
		return nil
	}
	stored.Status = newStatus
	if newStatus == model.OrderStatusPaid {
		key := enrollmentKey{userID: order.UserID, courseID: order.CourseID}
		// ON CONFLICT DO NOTHING on the unique (user_id, course_id) index.
		if r.enrollments[key] == 0 {
			r.enrollments[key] = 1
		}
	}
	return nil
}

type fakeGateway struct {
	fail       bool
	calls      int
	lastAmount int64
	lastCorrID string
}

func (g *fakeGateway) CreateCheckout(amount int64, correlationID, description, customerName, customerEmail string) (*Checkout, error) {
	g.calls++
	g.lastAmount = amount
	g.lastCorrID = correlationID
	if g.fail {
		return nil, errors.New("gateway unavailable")
	}
	return &Checkout{GatewayID: "tok-" + correlationID, CheckoutURL: "https://pay.test/" + correlationID}, nil
}

type fakeNotificationRepo struct {
	created []model.Notification
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

type sentNotification struct {
	userIDs   []uint
	title     string
	notifType string
	actionID  *string
}

type fakeDispatcher struct {
	sent []sentNotification
}

func (d *fakeDispatcher) Send(userIDs []uint, title, body, notifType string, actionID *string) {
	d.sent = append(d.sent, sentNotification{userIDs: userIDs, title: title, notifType: notifType, actionID: actionID})
}
