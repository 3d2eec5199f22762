package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document is a keyed JSON blob. The account module keeps its full account
// list under one key and the current-user snapshot under another; every
// mutation rewrites the whole value, so a row is always internally consistent.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Immutable().
			Comment("Storage key, e.g. quiz_users or quiz_current_user"),
		field.Bytes("value").
			Comment("JSON-serialized document, rewritten in full on every save"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last full rewrite of this document"),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("key"),
	}
}
