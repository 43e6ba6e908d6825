package rest

import (
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/services"
)

type credentialsPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
}

func (p userPayload) input() services.UserInput {
	return services.UserInput{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  p.Password,
	}
}

type answerPayload struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

type questionPayload struct {
	Text    string          `json:"text" binding:"required"`
	Answers []answerPayload `json:"answers" binding:"required,len=4,onecorrect,dive"`
}

type quizPayload struct {
	Name      string            `json:"name" binding:"required"`
	Questions []questionPayload `json:"questions" binding:"required,min=1,dive"`
}

func (p quizPayload) input() services.QuizInput {
	questions := make([]models.Question, 0, len(p.Questions))
	for _, q := range p.Questions {
		answers := make([]models.Answer, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, models.Answer{Text: a.Text, Correct: a.Correct})
		}
		questions = append(questions, models.Question{Text: q.Text, Answers: answers})
	}
	return services.QuizInput{Name: p.Name, Questions: questions}
}

// pageQuery fields are pointers so an explicit zero is rejected rather than
// treated as absent.
type pageQuery struct {
	Page *int `form:"page" binding:"omitempty,min=1"`
	Size *int `form:"size" binding:"omitempty,min=1"`
}

func (q pageQuery) request() models.PageRequest {
	var p models.PageRequest
	if q.Page != nil {
		p.Page = *q.Page
	}
	if q.Size != nil {
		p.Size = *q.Size
	}
	return p.Normalize()
}

// userResponse is the public view of an account.
type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
