package store

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store used by tests and by local runs without MongoDB.
// Documents keep insertion order; filters are equality matches like the Mongo store.
type Memory struct {
	mu   sync.RWMutex
	docs []models.Document
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Find(ctx context.Context, q Query) ([]models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Document{}
	for _, d := range m.docs {
		if matches(d, q.Filter) {
			out = append(out, d)
		}
	}
	if q.SortDesc != "" {
		key := q.SortDesc
		sort.SliceStable(out, func(i, j int) bool {
			return compareValues(out[i][key], out[j][key]) > 0
		})
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	for i, d := range out {
		out[i] = project(d, q.Fields)
	}
	return out, nil
}

func (m *Memory) FindOne(ctx context.Context, filter map[string]interface{}) (models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.docs {
		if matches(d, filter) {
			return copyDoc(d), nil
		}
	}
	return nil, nil
}

func (m *Memory) FindByID(ctx context.Context, id string) (models.Document, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return m.FindOne(ctx, map[string]interface{}{models.FieldID: oid})
}

func (m *Memory) Insert(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := copyDoc(doc)
	if d == nil {
		d = models.Document{}
	}
	if _, ok := d[models.FieldID]; !ok {
		d[models.FieldID] = primitive.NewObjectID()
	}
	m.docs = append(m.docs, d)
	return models.InsertResult{Acknowledged: true, InsertedID: d[models.FieldID]}, nil
}

func (m *Memory) SetByID(ctx context.Context, id string, fields map[string]interface{}) (models.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	res := models.UpdateResult{Acknowledged: true}
	for i, d := range m.docs {
		if !valuesEqual(d[models.FieldID], oid) {
			continue
		}
		res.MatchedCount = 1
		updated := copyDoc(d)
		changed := false
		for k, v := range fields {
			if old, ok := updated[k]; !ok || !valuesEqual(old, v) {
				changed = true
			}
			updated[k] = v
		}
		if changed {
			res.ModifiedCount = 1
			m.docs[i] = updated
		}
		break
	}
	return res, nil
}

func (m *Memory) DeleteByID(ctx context.Context, id string) (models.DeleteResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if valuesEqual(d[models.FieldID], oid) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

// Len reports the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func matches(d models.Document, filter map[string]interface{}) bool {
	for k, want := range filter {
		if !valuesEqual(d[k], want) {
			return false
		}
	}
	return true
}

func project(d models.Document, fields []string) models.Document {
	if len(fields) == 0 {
		return copyDoc(d)
	}
	out := models.Document{}
	if id, ok := d[models.FieldID]; ok {
		out[models.FieldID] = id
	}
	for _, f := range fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

func copyDoc(d models.Document) models.Document {
	if d == nil {
		return nil
	}
	out := make(models.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders numbers, strings and timestamps; missing values sort lowest.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			return ta.Compare(tb)
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}
