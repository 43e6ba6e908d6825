package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	ownerToken = "owner-token"
	ownerID    = "0d9c6a6e-5f0b-4d1c-9a47-3d9a2b1c0f11"
	quizID     = "5b1f4d0e-8c2a-4e4f-9f7b-6a3c2d1e0f22"
)

var ownerIdentity = &models.Identity{ID: ownerID, Email: "owner@trivia.com"}

type stubAuth struct {
	authErr    error
	issueErr   error
	resolveErr error
	meErr      error
}

func (s *stubAuth) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return ownerIdentity, nil
}

func (s *stubAuth) IssueToken(id *models.Identity) (auth.AuthToken, error) {
	if s.issueErr != nil {
		return auth.AuthToken{}, s.issueErr
	}
	return auth.AuthToken{AccessToken: ownerToken, ExpiresIn: 3600}, nil
}

func (s *stubAuth) ResolveToken(ctx context.Context, token string) (*models.Identity, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	if token != ownerToken {
		return nil, common.ErrInvalidToken
	}
	return ownerIdentity, nil
}

func (s *stubAuth) Me(ctx context.Context, id *models.Identity) (*models.User, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	return &models.User{ID: id.ID, FirstName: "Olive", LastName: "Owner", Email: id.Email, PasswordHash: "secret-hash"}, nil
}

type stubUsers struct {
	err     error
	lastIn  services.UserInput
	lastID  string
	deleted bool
}

func (s *stubUsers) Register(ctx context.Context, in services.UserInput) (*models.User, error) {
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: ownerID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, PasswordHash: "secret-hash"}, nil
}

func (s *stubUsers) Update(ctx context.Context, id *models.Identity, userID string, in services.UserInput) (*models.User, error) {
	s.lastIn, s.lastID = in, userID
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: userID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (s *stubUsers) Delete(ctx context.Context, id *models.Identity, userID string) error {
	s.lastID = userID
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

type stubQuizzes struct {
	err      error
	lastIn   services.QuizInput
	lastPage models.PageRequest
	lastID   string
	panicOn  string
}

func (s *stubQuizzes) quiz(id string, in services.QuizInput) *models.Quiz {
	return &models.Quiz{ID: id, Name: in.Name, Questions: in.Questions, UserID: ownerID}
}

func (s *stubQuizzes) Create(ctx context.Context, id *models.Identity, in services.QuizInput) (*models.Quiz, error) {
	s.lastIn = in
	if s.err != nil {
		return nil, s.err
	}
	return s.quiz(quizID, in), nil
}

func (s *stubQuizzes) Find(ctx context.Context, id *models.Identity, page models.PageRequest) (models.Paginated[models.Quiz], error) {
	s.lastPage = page
	if s.err != nil {
		return models.Paginated[models.Quiz]{}, s.err
	}
	data := []models.Quiz{*s.quiz(quizID, services.QuizInput{Name: "Geo"})}
	return models.NewPaginated(data, 1, page), nil
}

func (s *stubQuizzes) Get(ctx context.Context, id *models.Identity, quiz string) (*models.Quiz, error) {
	s.lastID = quiz
	if s.panicOn == "get" {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.quiz(quiz, services.QuizInput{Name: "Geo"}), nil
}

func (s *stubQuizzes) Update(ctx context.Context, id *models.Identity, quiz string, in services.QuizInput) (*models.Quiz, error) {
	s.lastID, s.lastIn = quiz, in
	if s.err != nil {
		return nil, s.err
	}
	return s.quiz(quiz, in), nil
}

func (s *stubQuizzes) Delete(ctx context.Context, id *models.Identity, quiz string) error {
	s.lastID = quiz
	return s.err
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type testEnv struct {
	auth    *stubAuth
	users   *stubUsers
	quizzes *stubQuizzes
	pinger  *stubPinger
	router  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{auth: &stubAuth{}, users: &stubUsers{}, quizzes: &stubQuizzes{}, pinger: &stubPinger{}}

	h := NewHandler(env.auth, env.users, env.quizzes, env.pinger, logging.Nop{})
	r, err := NewRouter(h)
	require.NoError(t, err)
	env.router = r
	return env
}

// do performs a request. token may be empty for anonymous calls.
func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

const validQuiz = `{
  "name": "Geo",
  "questions": [{
    "text": "Capital of France?",
    "answers": [
      {"text": "Paris", "correct": true},
      {"text": "Rome"},
      {"text": "Berlin"},
      {"text": "Madrid"}
    ]
  }]
}`

const validUser = `{"firstName":"Ann","lastName":"Lee","email":"ann@trivia.com","password":"Ann!pass1"}`

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
