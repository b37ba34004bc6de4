package services

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection is an in-memory Collection backed by a slice of documents.
// It understands exactly the filters the cascade engine issues: field
// equality plus the $lt, $gt and $ne operators.
type fakeCollection struct {
	mu   sync.Mutex
	docs []bson.M
}

func newFakeCollection(docs ...bson.M) *fakeCollection {
	return &fakeCollection{docs: docs}
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]interface{}, 0, len(f.docs))
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			matched = append(matched, doc)
		}
	}
	return mongo.NewCursorFromDocuments(matched, nil, nil)
}

func (f *fakeCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			applyUpdate(doc, update.(bson.M))
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var modified int64
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			applyUpdate(doc, update.(bson.M))
			modified++
		}
	}
	return &mongo.UpdateResult{MatchedCount: modified, ModifiedCount: modified}, nil
}

func (f *fakeCollection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []bson.M
	var deleted int64
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	f.docs = kept
	return &mongo.DeleteResult{DeletedCount: deleted}, nil
}

func (f *fakeCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(bson.M)) {
			count++
		}
	}
	return count, nil
}

// get returns the stored document with the given _id, or nil.
func (f *fakeCollection) get(id interface{}) bson.M {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, doc := range f.docs {
		if valuesEqual(doc["_id"], id) {
			return doc
		}
	}
	return nil
}

func (f *fakeCollection) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

func matchFilter(doc, filter bson.M) bool {
	for field, want := range filter {
		got, present := doc[field]
		if ops, isOp := want.(bson.M); isOp {
			for op, val := range ops {
				switch op {
				case "$lt":
					t1, ok1 := toTime(got)
					t2, ok2 := toTime(val)
					if !ok1 || !ok2 || !t1.Before(t2) {
						return false
					}
				case "$gt":
					t1, ok1 := toTime(got)
					t2, ok2 := toTime(val)
					if !ok1 || !ok2 || !t1.After(t2) {
						return false
					}
				case "$ne":
					if valuesEqual(got, val) {
						return false
					}
				default:
					return false
				}
			}
			continue
		}
		if !present || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if ta, ok := toTime(a); ok {
		tb, ok := toTime(b)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

func applyUpdate(doc, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		for k, v := range set {
			doc[k] = v
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		for k := range unset {
			delete(doc, k)
		}
	}
}

// fakeStore records deleted keys and can be told to fail specific ones.
type fakeStore struct {
	mu      sync.Mutex
	deleted []string
	fail    map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{fail: make(map[string]bool)}
}

func (f *fakeStore) DeleteObject(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return !f.fail[key]
}

func (f *fakeStore) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// fakeTxnRunner runs the function directly and counts invocations.
type fakeTxnRunner struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(ctx)
}
