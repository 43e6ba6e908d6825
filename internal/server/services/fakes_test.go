package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/dbx"
	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	quizzesrepo "github.com/dmitrijs2005/triviaquiz/internal/server/repositories/quizzes"
	usersrepo "github.com/dmitrijs2005/triviaquiz/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users.Repository.
type fakeUsersRepo struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*models.User
	err    error
	delErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		c := *u
		r.byID[u.ID] = &c
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	c := *u
	c.ID = fmt.Sprintf("u-%d", f.seq)
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.byID {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	c.UpdatedAt = time.Now()
	f.byID[u.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeQuizzesRepo is an in-memory quizzes.Repository.
type fakeQuizzesRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*models.Quiz
	err     error
	updates []models.Quiz
	// vanishOnWrite makes Update/Delete behave as if the row disappeared
	// after it was loaded.
	vanishOnWrite bool
}

func newFakeQuizzesRepo(quizzes ...*models.Quiz) *fakeQuizzesRepo {
	r := &fakeQuizzesRepo{byID: map[string]*models.Quiz{}}
	for _, q := range quizzes {
		c := *q
		r.byID[q.ID] = &c
	}
	return r
}

func (f *fakeQuizzesRepo) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *q
	return &c, nil
}

func (f *fakeQuizzesRepo) Create(ctx context.Context, q *models.Quiz) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	c := *q
	c.ID = fmt.Sprintf("q-%d", f.seq)
	c.CreatedAt = time.Unix(int64(f.seq), 0)
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeQuizzesRepo) Update(ctx context.Context, q *models.Quiz) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, *q)
	stored, ok := f.byID[q.ID]
	if !ok || f.vanishOnWrite {
		return nil, common.ErrorNotFound
	}
	stored.Name = q.Name
	stored.Questions = q.Questions
	c := *stored
	return &c, nil
}

func (f *fakeQuizzesRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok || f.vanishOnWrite {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeQuizzesRepo) filtered(filter models.QuizFilter) []models.Quiz {
	out := make([]models.Quiz, 0)
	for _, q := range f.byID {
		if q.UserID == filter.UserID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *fakeQuizzesRepo) Find(ctx context.Context, filter models.QuizFilter, page models.PageRequest) ([]models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	all := f.filtered(filter)
	page = page.Normalize()
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeQuizzesRepo) Count(ctx context.Context, filter models.QuizFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.filtered(filter)), nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	q *fakeQuizzesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Quizzes(db dbx.DBTX) quizzesrepo.Repository   { return m.q }

// fakeHasher prefixes instead of deriving keys and counts verifications.
type fakeHasher struct {
	mu       sync.Mutex
	hashes   int
	verifies int
	hashErr  error
}

func (h *fakeHasher) Hash(ctx context.Context, pw string) (string, error) {
	h.mu.Lock()
	h.hashes++
	h.mu.Unlock()
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + pw, nil
}

func (h *fakeHasher) Verify(ctx context.Context, pw, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	return hash == "hashed:"+pw
}

// fakeTokens maps opaque token strings to payloads.
type fakeTokens struct {
	payloads map[string]*auth.TokenPayload
	errs     map[string]error
	issueErr error
}

func (f *fakeTokens) Issue(id *models.Identity) (auth.AuthToken, error) {
	if f.issueErr != nil {
		return auth.AuthToken{}, f.issueErr
	}
	return auth.AuthToken{AccessToken: "token-for-" + id.ID, ExpiresIn: 3600}, nil
}

func (f *fakeTokens) Verify(token string) (*auth.TokenPayload, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if p, ok := f.payloads[token]; ok {
		return p, nil
	}
	return nil, common.ErrInvalidToken
}
