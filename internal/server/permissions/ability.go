// Package permissions decides whether an identity may perform an action on
// a resource. Rules are plain data evaluated in order; the first matching
// rule allows and anything unmatched is denied.
package permissions

import "github.com/dmitrijs2005/triviaquiz/internal/server/models"

// Action is an operation on a subject. Manage matches every action.
type Action string

const (
	Manage Action = "manage"
	Create Action = "create"
	Read   Action = "read"
	Update Action = "update"
	Delete Action = "delete"
)

// Subject is the closed set of resource kinds rules can target.
type Subject int

const (
	SubjectNone Subject = iota
	SubjectQuiz
	SubjectUser
)

func (s Subject) String() string {
	switch s {
	case SubjectQuiz:
		return "Quiz"
	case SubjectUser:
		return "User"
	default:
		return "None"
	}
}

// Condition reports whether a rule applies to resource for identity.
// resource is always of the rule's subject type.
type Condition func(identity *models.Identity, resource any) bool

// Rule allows Action on Subject when Condition holds. A nil Condition
// always holds.
type Rule struct {
	Action    Action
	Subject   Subject
	Condition Condition
}

func (r Rule) matches(identity *models.Identity, action Action, subject Subject, resource any) bool {
	if r.Subject != subject {
		return false
	}
	if r.Action != Manage && r.Action != action {
		return false
	}
	return r.Condition == nil || r.Condition(identity, resource)
}

// Ability is the evaluated rule set for one identity.
type Ability struct {
	identity *models.Identity
	rules    []Rule
}

// New returns an Ability for identity over rules.
func New(identity *models.Identity, rules []Rule) *Ability {
	return &Ability{identity: identity, rules: rules}
}

// Can reports whether the identity may perform action on resource.
func (a *Ability) Can(action Action, resource any) bool {
	if a == nil || a.identity == nil {
		return false
	}

	subject := DetectSubject(resource)
	if subject == SubjectNone {
		return false
	}

	for _, r := range a.rules {
		if r.matches(a.identity, action, subject, resource) {
			return true
		}
	}
	return false
}

// Cannot is the negation of Can.
func (a *Ability) Cannot(action Action, resource any) bool {
	return !a.Can(action, resource)
}

// DetectSubject maps a resource to its subject by exact type. Nil pointers
// and unknown types detect as SubjectNone.
func DetectSubject(resource any) Subject {
	switch r := resource.(type) {
	case *models.Quiz:
		if r == nil {
			return SubjectNone
		}
		return SubjectQuiz
	case models.Quiz:
		return SubjectQuiz
	case *models.User:
		if r == nil {
			return SubjectNone
		}
		return SubjectUser
	case models.User:
		return SubjectUser
	default:
		return SubjectNone
	}
}
