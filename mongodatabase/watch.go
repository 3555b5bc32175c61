package mongodatabase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

// codeNamespaceExists is returned by create for an existing collection
const codeNamespaceExists = 48

// ChangeHandler receives every committed write on a watched collection
type ChangeHandler func(ctx context.Context, event *model.ChangeEvent) error

// Watcher tails change streams of a set of collections
type Watcher struct {
	DB          *mongo.Database
	Cache       model.ChangeCache
	Collections []string
	Handler     ChangeHandler
	Backoff     time.Duration
}

// NewWatcher create a change stream watcher
func NewWatcher(db *mongo.Database, cache model.ChangeCache, collections []string, handler ChangeHandler) *Watcher {
	return &Watcher{
		DB:          db,
		Cache:       cache,
		Collections: collections,
		Handler:     handler,
		Backoff:     5 * time.Second,
	}
}

// EnablePreImages turns on pre and post images so deletes carry the removed document
func (w *Watcher) EnablePreImages(ctx context.Context) error {
	for _, name := range w.Collections {
		opts := options.CreateCollection().SetChangeStreamPreAndPostImages(bson.M{"enabled": true})
		err := w.DB.CreateCollection(ctx, name, opts)
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
			err = w.DB.RunCommand(ctx, bson.D{
				{Key: "collMod", Value: name},
				{Key: "changeStreamPreAndPostImages", Value: bson.M{"enabled": true}},
			}).Err()
		}
		if err != nil {
			return errors.Wrapf(err, "unable to enable pre-images on %s", name)
		}
	}
	return nil
}

// Run watches every collection until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range w.Collections {
		name := name
		g.Go(func() error {
			defer util.RecoverGoroutinePanic(nil)
			w.watchLoop(gctx, name)
			return nil
		})
	}
	return g.Wait()
}

func (w *Watcher) watchLoop(ctx context.Context, name string) {
	logger := logrus.WithField("collection", name)
	for {
		err := w.watch(ctx, name)
		if ctx.Err() != nil {
			logger.Info("change stream stopped")
			return
		}
		logger.WithError(err).Warn("change stream closed, reopening")
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.Backoff):
		}
	}
}

func (w *Watcher) watch(ctx context.Context, name string) error {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{
		"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
	}}}}
	opts := options.ChangeStream().
		SetFullDocument(options.WhenAvailable).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	if w.Cache != nil {
		token, err := w.Cache.ResumeToken(name)
		if err != nil {
			logrus.WithError(err).WithField("collection", name).Warn("unable to load resume token")
		} else if token != "" {
			opts.SetResumeAfter(bson.M{"_data": token})
		}
	}

	stream, err := w.DB.Collection(name).Watch(ctx, pipeline, opts)
	if err != nil {
		return errors.Wrap(err, "unable to open change stream")
	}
	defer stream.Close(context.Background())

	logrus.WithField("collection", name).Info("watching change stream")
	for stream.Next(ctx) {
		doc := &changeDoc{}
		if err := stream.Decode(doc); err != nil {
			logrus.WithError(err).WithField("collection", name).Error("unable to decode change event")
			continue
		}
		if event, ok := doc.toEvent(); ok {
			if err := w.Handler(ctx, event); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"collection":  name,
					"document_id": event.DocumentID,
				}).Error("change event handling failed")
			}
		}
		if w.Cache != nil {
			if token := tokenData(stream.ResumeToken()); token != "" {
				if err := w.Cache.SaveResumeToken(name, token); err != nil {
					logrus.WithError(err).WithField("collection", name).Warn("unable to save resume token")
				}
			}
		}
	}
	return stream.Err()
}

type changeDoc struct {
	ID                       bson.Raw `bson:"_id"`
	OperationType            string   `bson:"operationType"`
	DocumentKey              bson.Raw `bson:"documentKey"`
	FullDocument             bson.Raw `bson:"fullDocument"`
	FullDocumentBeforeChange bson.Raw `bson:"fullDocumentBeforeChange"`
	NS                       struct {
		Coll string `bson:"coll"`
	} `bson:"ns"`
}

// toEvent converts a raw change document; ok is false for operation types
// that are not document writes.
func (d *changeDoc) toEvent() (*model.ChangeEvent, bool) {
	var kind model.ChangeKind
	switch d.OperationType {
	case "insert":
		kind = model.KindCreate
	case "update", "replace":
		kind = model.KindUpdate
	case "delete":
		kind = model.KindDelete
	default:
		return nil, false
	}

	event := &model.ChangeEvent{
		ID:         d.NS.Coll + ":" + tokenData(d.ID),
		Collection: d.NS.Coll,
		Kind:       kind,
		Before:     d.FullDocumentBeforeChange,
	}
	if kind != model.KindDelete {
		event.After = d.FullDocument
	}
	if len(d.DocumentKey) > 0 {
		if id, err := d.DocumentKey.LookupErr("_id"); err == nil {
			if s, ok := id.StringValueOK(); ok {
				event.DocumentID = s
			} else {
				event.DocumentID = id.String()
			}
		}
	}
	return event, true
}

func tokenData(token bson.Raw) string {
	if len(token) == 0 {
		return ""
	}
	data, err := token.LookupErr("_data")
	if err != nil {
		return ""
	}
	s, _ := data.StringValueOK()
	return s
}
