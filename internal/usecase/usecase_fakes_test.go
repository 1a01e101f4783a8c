package usecase

import (
	"context"
	"io"

	"health-services-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestDB returns a gorm handle with no live connection. The fakes below
// never execute SQL through it.
func newTestDB() *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		panic(err)
	}
	return db
}

type fakeGenerator struct {
	lastPrompt  string
	lastImage   []byte
	lastFormat  string
	textCalls   int
	imageCalls  int
	generateFn  func(prompt string, out interface{}) error
	generateImg func(prompt string, image []byte, format string, out interface{}) error
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, out interface{}) error {
	g.textCalls++
	g.lastPrompt = prompt
	if g.generateFn == nil {
		return nil
	}
	return g.generateFn(prompt, out)
}

func (g *fakeGenerator) GenerateImageJSON(ctx context.Context, prompt string, image []byte, format string, out interface{}) error {
	g.imageCalls++
	g.lastPrompt = prompt
	g.lastImage = image
	g.lastFormat = format
	if g.generateImg == nil {
		return nil
	}
	return g.generateImg(prompt, image, format, out)
}

type fakeQuota struct {
	count     int
	checkErr  error
	commitErr error
	checks    []entity.Feature
	commits   []entity.Feature
}

func (q *fakeQuota) Check(ctx context.Context, userID uuid.UUID, feature entity.Feature) (int, error) {
	q.checks = append(q.checks, feature)
	if q.checkErr != nil {
		return q.count, q.checkErr
	}
	return q.count, nil
}

func (q *fakeQuota) Commit(ctx context.Context, userID uuid.UUID, feature entity.Feature) error {
	q.commits = append(q.commits, feature)
	return q.commitErr
}

type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) LogAction(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	a.actions = append(a.actions, action)
	return nil
}

type fakeCatalogRepo struct {
	doctors      []entity.Doctor
	findAllErr   error
	findAllCalls int
	random       *entity.Doctor
	randomErr    error
}

func (r *fakeCatalogRepo) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	r.findAllCalls++
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	return r.doctors, nil
}

func (r *fakeCatalogRepo) FindRandom(ctx context.Context) (*entity.Doctor, error) {
	if r.randomErr != nil {
		return nil, r.randomErr
	}
	return r.random, nil
}

type fakeUserRepo struct {
	users      map[uuid.UUID]*entity.User
	updated    []*entity.User
	findErr    error
	updateErr  error
	increments []string
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.users[id], nil
}

func (r *fakeUserRepo) FindAllByRole(db *gorm.DB, role string) ([]entity.User, error) {
	var users []entity.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, user)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) IncrementCounter(db *gorm.DB, id uuid.UUID, column string) error {
	r.increments = append(r.increments, column)
	return nil
}
