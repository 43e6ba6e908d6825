package models

import "time"

// AnswersPerQuestion is the number of answers every question carries.
const AnswersPerQuestion = 4

type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

// Quiz is owned by the user whose ID is UserID. The owner is fixed at creation.
type Quiz struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// QuizFilter narrows quiz listings to one owner. UserID is required.
type QuizFilter struct {
	UserID string
}
