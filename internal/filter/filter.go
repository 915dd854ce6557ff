// Package filter builds record predicates from query criteria.
package filter

import "github.com/Nao-Mk2/showjobs/internal/jobxml"

// Criteria lists exact-match constraints on a job record. Empty fields impose
// no restriction.
type Criteria struct {
	JobID   string
	Queue   string
	Group   string
	Account string
	User    string
}

// Empty reports whether no constraint is set.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// Predicate returns a predicate accepting records that satisfy every set
// constraint.
func (c Criteria) Predicate() jobxml.Predicate {
	var preds []jobxml.Predicate
	add := func(element, value string) {
		if value == "" {
			return
		}
		preds = append(preds, func(n *jobxml.Node) bool {
			return n.HasChildText(element, value)
		})
	}
	add("Job_Id", c.JobID)
	add("queue", c.Queue)
	add("egroup", c.Group)
	add("Account_Name", c.Account)
	add("euser", c.User)

	if len(preds) == 0 {
		return jobxml.MatchAll
	}
	return jobxml.All(preds...)
}
