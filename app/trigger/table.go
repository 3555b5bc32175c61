package trigger

import (
	"context"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// HandlerFunc reacts to one committed write
type HandlerFunc func(ctx context.Context, event *model.ChangeEvent) error

// Subscription binds a handler to writes of one kind on one collection
type Subscription struct {
	Name       string
	Collection string
	Kind       model.ChangeKind
	Handler    HandlerFunc
}

// Matches reports whether the subscription applies to a write.
func (s Subscription) Matches(collection string, kind model.ChangeKind) bool {
	if s.Collection != collection {
		return false
	}
	return s.Kind == kind || s.Kind == model.KindWrite
}

// Table - ordered set of subscriptions
type Table []Subscription

// Match returns the subscriptions that apply to a write, in table order.
func (t Table) Match(collection string, kind model.ChangeKind) []Subscription {
	matched := []Subscription{}
	for _, s := range t {
		if s.Matches(collection, kind) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Collections lists each subscribed collection once.
func (t Table) Collections() []string {
	seen := map[string]bool{}
	list := []string{}
	for _, s := range t {
		if !seen[s.Collection] {
			seen[s.Collection] = true
			list = append(list, s.Collection)
		}
	}
	return list
}
