package sessions

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Claims is the normalized assertion triple extracted from a verified token.
// It lives for one exchange call and is never persisted.
type Claims struct {
	UserID    string
	SessionID string
	AppID     string
}

// NormalizeClaims converts the loosely-typed claims value returned by the
// verifier into a strict Claims record. The raw value may be any string-keyed
// map or any struct; nested "user"/"session" records expose the value under
// their "id" field. All three fields are required; the returned
// ClaimsIncompleteError names every unresolved field, not just the first.
func NormalizeClaims(raw any) (*Claims, error) {
	claims := &Claims{}
	var missing []string

	if v, ok := extractField(raw, "user_id", "user"); ok {
		claims.UserID = v
	} else {
		missing = append(missing, "user_id")
	}
	if v, ok := extractField(raw, "session_id", "session"); ok {
		claims.SessionID = v
	} else {
		missing = append(missing, "session_id")
	}
	if v, ok := extractField(raw, "app_id", ""); ok {
		claims.AppID = v
	} else {
		missing = append(missing, "app_id")
	}

	if len(missing) > 0 {
		return nil, &ClaimsIncompleteError{Missing: missing}
	}
	return claims, nil
}

// extractField resolves one claim field: direct lookup of the primary key
// first, then the fallback key, whose value may itself be a nested record
// carrying the id.
func extractField(raw any, key, fallback string) (string, bool) {
	if v, ok := lookup(raw, key); ok {
		if s, ok := scalarString(v); ok {
			return s, true
		}
	}
	if fallback == "" {
		return "", false
	}
	v, ok := lookup(raw, fallback)
	if !ok {
		return "", false
	}
	if s, ok := scalarString(v); ok {
		return s, true
	}
	if nested, ok := lookup(v, "id"); ok {
		if s, ok := scalarString(nested); ok {
			return s, true
		}
	}
	return "", false
}

// lookup supports the two shapes verifiers hand back: key lookup on
// string-keyed maps (including named map types like jwt.MapClaims) and
// attribute lookup on structs.
func lookup(raw any, key string) (any, bool) {
	v := reflect.ValueOf(raw)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		want := canonicalName(key)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if canonicalName(f.Name) == want || jsonTagName(f) == key {
				return v.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// scalarString accepts string and integer scalars only. Integers are
// stringified; integral float64 and json.Number are included because JSON
// decoding produces them for what the provider emitted as integers. Empty
// strings count as missing: a blank claim must never become a user or
// session key.
func scalarString(v any) (string, bool) {
	if n, ok := v.(json.Number); ok {
		if _, err := n.Int64(); err != nil {
			return "", false
		}
		return n.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

// canonicalName folds "UserID", "user_id" and "userId" onto one form.
func canonicalName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
