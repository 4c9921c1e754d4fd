// Package schema translates between the in-memory entity shape (camelCase
// fields) and the remote row shape (snake_case columns tagged with the owning
// user). The translation is purely syntactic and reversible over the field
// set used by this system: FromRemote(ToRemote(e, u)) == e for every entity.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
)

// OwnerField is the remote column carrying the owning session's identity. It
// is attached on the way out and dropped on the way in; it is not part of the
// in-memory entity shape.
const OwnerField = "user_id"

// driverIDField is the driver-owned primary key. Rows carry it on the remote
// side; it is never part of the entity shape and is dropped on the way in so
// it cannot clobber the entity's own id field.
const driverIDField = "_id"

// ToRemote renames every top-level field of an entity from camelCase to
// snake_case and attaches the owner identity. Side-effect-free.
func ToRemote(entity any, ownerID string) (bson.M, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("entity is not an object: %v", err)
	}

	row := bson.M{}
	for name, value := range fields {
		row[ToSnake(name)] = value
	}
	row[OwnerField] = ownerID
	return row, nil
}

// FromRemote performs the inverse of ToRemote: it renames every column back
// to camelCase, drops the owner identity and the driver's primary key, and
// decodes the result into the requested entity kind.
func FromRemote[T any](row bson.M) (T, error) {
	var entity T

	fields := make(map[string]any, len(row))
	for name, value := range row {
		if name == OwnerField || name == driverIDField {
			continue
		}
		fields[ToCamel(name)] = value
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return entity, fmt.Errorf("failed to encode row: %v", err)
	}
	if err := json.Unmarshal(raw, &entity); err != nil {
		return entity, fmt.Errorf("failed to decode row: %v", err)
	}
	return entity, nil
}

// ToSnake converts a camelCase field name to snake_case at word boundaries.
func ToSnake(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a snake_case column name back to camelCase.
func ToCamel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
