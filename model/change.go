package model

import (
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// ChangeKind - kind of document write observed on a collection
type ChangeKind string

// change kinds. KindWrite matches create, update and delete.
const (
	KindCreate ChangeKind = "create"
	KindUpdate ChangeKind = "update"
	KindDelete ChangeKind = "delete"
	KindWrite  ChangeKind = "write"
)

// ErrNoDocument - the event carries neither a post-write nor a pre-delete image
var ErrNoDocument = errors.New("change event has no document image")

// ChangeEvent - one committed write on a watched collection
type ChangeEvent struct {
	ID         string
	Collection string
	Kind       ChangeKind
	DocumentID string
	After      bson.Raw
	Before     bson.Raw
}

// Document returns the document as it exists after the write, or as it
// existed before deletion.
func (e *ChangeEvent) Document() bson.Raw {
	if len(e.After) > 0 {
		return e.After
	}
	return e.Before
}

// Decode unmarshals Document into v.
func (e *ChangeEvent) Decode(v interface{}) error {
	raw := e.Document()
	if len(raw) == 0 {
		return ErrNoDocument
	}
	return errors.Wrap(bson.Unmarshal(raw, v), "unable to decode change document")
}

// ChangeCache - dedupe ledger and resume-token store for change streams
type ChangeCache interface {
	EventHandled(eventID string) (bool, error)
	MarkEventHandled(eventID string, ttl time.Duration) error
	ResumeToken(stream string) (string, error)
	SaveResumeToken(stream, token string) error
}
