package store

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matches evaluates a query document against doc. Supported: implicit equality,
// $and, $or, $eq, $ne, $in, $nin, $all, $regex/$options and $elemMatch.
func matches(doc map[string]any, filter bson.D) (bool, error) {
	for _, e := range filter {
		ok, err := matchElem(doc, e)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchElem(doc map[string]any, e bson.E) (bool, error) {
	switch e.Key {
	case "$and", "$or":
		subs, ok := asArray(e.Value)
		if !ok {
			return false, fmt.Errorf("%s needs an array", e.Key)
		}
		for _, sub := range subs {
			d, ok := sub.(bson.D)
			if !ok {
				return false, fmt.Errorf("%s element must be a document", e.Key)
			}
			ok, err := matches(doc, d)
			if err != nil {
				return false, err
			}
			if e.Key == "$or" && ok {
				return true, nil
			}
			if e.Key == "$and" && !ok {
				return false, nil
			}
		}
		return e.Key == "$and", nil
	}

	values := lookup(doc, e.Key)
	if ops, ok := operators(e.Value); ok {
		return matchOperators(values, ops)
	}
	return containsEqual(expand(values), e.Value), nil
}

func matchOperators(values []any, ops bson.D) (bool, error) {
	var pattern *regexp.Regexp
	for _, op := range ops {
		var ok bool
		switch op.Key {
		case "$eq":
			ok = containsEqual(expand(values), op.Value)
		case "$ne":
			ok = !containsEqual(expand(values), op.Value)
		case "$in", "$nin", "$all":
			targets, isArr := asArray(op.Value)
			if !isArr {
				return false, fmt.Errorf("%s needs an array", op.Key)
			}
			ok = setMatch(op.Key, expand(values), targets)
		case "$regex":
			re, err := compileRegex(op.Value, optionsOf(ops))
			if err != nil {
				return false, err
			}
			pattern = re
			ok = anyMatch(expand(values), pattern)
		case "$options":
			continue
		case "$elemMatch":
			cond, isDoc := op.Value.(bson.D)
			if !isDoc {
				return false, fmt.Errorf("$elemMatch needs a document")
			}
			m, err := elemMatch(values, cond)
			if err != nil {
				return false, err
			}
			ok = m
		default:
			return false, fmt.Errorf("unsupported operator %s", op.Key)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func setMatch(op string, have, targets []any) bool {
	switch op {
	case "$in":
		for _, t := range targets {
			if containsEqual(have, t) {
				return true
			}
		}
		return false
	case "$nin":
		for _, t := range targets {
			if containsEqual(have, t) {
				return false
			}
		}
		return true
	default:
		if len(targets) == 0 {
			return false
		}
		for _, t := range targets {
			if !containsEqual(have, t) {
				return false
			}
		}
		return true
	}
}

func elemMatch(values []any, cond bson.D) (bool, error) {
	for _, v := range values {
		arr, ok := asArray(v)
		if !ok {
			continue
		}
		for _, elem := range arr {
			sub, ok := asMap(elem)
			if !ok {
				continue
			}
			m, err := matches(sub, cond)
			if err != nil {
				return false, err
			}
			if m {
				return true, nil
			}
		}
	}
	return false, nil
}

func optionsOf(ops bson.D) string {
	for _, op := range ops {
		if op.Key == "$options" {
			if s, ok := op.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func compileRegex(v any, options string) (*regexp.Regexp, error) {
	var pattern string
	switch p := v.(type) {
	case string:
		pattern = p
	case primitive.Regex:
		pattern, options = p.Pattern, p.Options+options
	default:
		return nil, fmt.Errorf("$regex needs a string")
	}
	if strings.Contains(options, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid $regex: %w", err)
	}
	return re, nil
}

func anyMatch(values []any, re *regexp.Regexp) bool {
	for _, v := range values {
		if s, ok := v.(string); ok && re.MatchString(s) {
			return true
		}
	}
	return false
}

// operators returns v as an operator document when all of its keys start with $.
func operators(v any) (bson.D, bool) {
	d, ok := v.(bson.D)
	if !ok || len(d) == 0 {
		return nil, false
	}
	for _, e := range d {
		if !strings.HasPrefix(e.Key, "$") {
			return nil, false
		}
	}
	return d, true
}

// lookup resolves a dotted path, descending into arrays of subdocuments.
func lookup(v any, path string) []any {
	return walk(v, strings.Split(path, "."))
}

func walk(v any, path []string) []any {
	if len(path) == 0 {
		return []any{v}
	}
	if arr, ok := asArray(v); ok {
		var out []any
		for _, elem := range arr {
			out = append(out, walk(elem, path)...)
		}
		return out
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	next, ok := m[path[0]]
	if !ok {
		return nil
	}
	return walk(next, path[1:])
}

// expand flattens array values one level, the way equality on an array field behaves.
func expand(values []any) []any {
	var out []any
	for _, v := range values {
		if arr, ok := asArray(v); ok {
			out = append(out, arr...)
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsEqual(values []any, target any) bool {
	for _, v := range values {
		if equal(v, target) {
			return true
		}
	}
	return false
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp(fa, fb)
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return 0
}

func cmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	case time.Time:
		return float64(primitive.NewDateTimeFromTime(n)), true
	}
	return 0, false
}

func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case bson.A:
		return a, true
	case []any:
		return a, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return m, true
	case bson.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}
