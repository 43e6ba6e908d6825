package permissions

import "github.com/dmitrijs2005/triviaquiz/internal/server/models"

// DefaultRules are the rules every identity is evaluated against.
var DefaultRules = []Rule{
	{Action: Manage, Subject: SubjectQuiz, Condition: ownsQuiz},
	{Action: Manage, Subject: SubjectUser, Condition: isSelf},
}

// ForIdentity builds the Ability for identity with DefaultRules.
func ForIdentity(identity *models.Identity) *Ability {
	return New(identity, DefaultRules)
}

func ownsQuiz(identity *models.Identity, resource any) bool {
	var userID string
	switch q := resource.(type) {
	case *models.Quiz:
		userID = q.UserID
	case models.Quiz:
		userID = q.UserID
	default:
		return false
	}
	return identity.ID != "" && userID == identity.ID
}

func isSelf(identity *models.Identity, resource any) bool {
	var id string
	switch u := resource.(type) {
	case *models.User:
		id = u.ID
	case models.User:
		id = u.ID
	default:
		return false
	}
	return identity.ID != "" && id == identity.ID
}
