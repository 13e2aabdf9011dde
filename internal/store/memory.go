package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipe-harbor/backend/internal/model"
)

// MemoryStore is an in-process Store for development and tests.
// It evaluates the same query documents MongoStore sends to the server,
// for the operator subset the search compiler emits.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []bson.M
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Find(ctx context.Context, filter bson.D, sortBy bson.D, skip, limit int64) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("find", err)
	}

	s.mu.RLock()
	matched, err := s.filter(filter)
	s.mu.RUnlock()
	if err != nil {
		return nil, wrap("find", err)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return less(matched[i], matched[j], sortBy)
	})

	if skip < 0 || limit < 0 {
		return nil, wrap("find", fmt.Errorf("invalid window skip=%d limit=%d", skip, limit))
	}
	if skip >= int64(len(matched)) {
		return []model.Recipe{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}

	recipes := make([]model.Recipe, 0, len(matched))
	for _, doc := range matched {
		r, err := decode(doc)
		if err != nil {
			return nil, wrap("find", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, nil
}

func (s *MemoryStore) Count(ctx context.Context, filter bson.D) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, wrap("count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched, err := s.filter(filter)
	if err != nil {
		return 0, wrap("count", err)
	}
	return int64(len(matched)), nil
}

// InsertOne assigns a new ObjectID when the recipe has none.
func (s *MemoryStore) InsertOne(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("insert", err)
	}

	r := *recipe
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	doc, err := encode(&r)
	if err != nil {
		return nil, wrap("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(r.ID) >= 0 {
		return nil, wrap("insert", fmt.Errorf("duplicate key _id %s", r.ID.Hex()))
	}
	s.docs = append(s.docs, doc)
	return decode(doc)
}

func (s *MemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("find_by_id", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return decode(s.docs[i])
}

func (s *MemoryStore) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if !recipe.IsPersisted() {
		return s.InsertOne(ctx, recipe)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrap("save", err)
	}

	doc, err := encode(recipe)
	if err != nil {
		return nil, wrap("save", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(recipe.ID); i >= 0 {
		s.docs[i] = doc
	} else {
		s.docs = append(s.docs, doc)
	}
	return decode(doc)
}

func (s *MemoryStore) DeleteByFilter(ctx context.Context, filter bson.D) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, wrap("delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.docs[:0:0]
	var deleted int64
	for _, doc := range s.docs {
		ok, err := matches(doc, filter)
		if err != nil {
			return 0, wrap("delete", err)
		}
		if ok {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.docs = kept
	return deleted, nil
}

func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return wrap("ping", ctx.Err())
}

// filter must be called with s.mu held
func (s *MemoryStore) filter(filter bson.D) ([]bson.M, error) {
	var out []bson.M
	for _, doc := range s.docs {
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *MemoryStore) indexOf(id primitive.ObjectID) int {
	for i, doc := range s.docs {
		if oid, ok := doc[model.FieldID].(primitive.ObjectID); ok && oid == id {
			return i
		}
	}
	return -1
}

func encode(r *model.Recipe) (bson.M, error) {
	raw, err := bson.Marshal(r)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode(doc bson.M) (*model.Recipe, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var r model.Recipe
	if err := bson.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// less orders two documents by the sort keys; 1 ascending, -1 descending.
func less(a, b bson.M, sortBy bson.D) bool {
	for _, key := range sortBy {
		c := compare(first(lookup(a, key.Key)), first(lookup(b, key.Key)))
		if c == 0 {
			continue
		}
		if dir, ok := toFloat(key.Value); ok && dir < 0 {
			return c > 0
		}
		return c < 0
	}
	return false
}

func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
