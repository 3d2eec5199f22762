package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anhpng/luyende/ent"
	"github.com/anhpng/luyende/ent/document"
)

// documentRepo implements DocumentRepo using the ent client.
type documentRepo struct {
	client *ent.Client
}

func (r *documentRepo) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	doc, err := r.client.Document.Query().
		Where(document.KeyEQ(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query document %q: %w", key, err)
	}
	return json.RawMessage(doc.Value), true, nil
}

func (r *documentRepo) Put(ctx context.Context, key string, value json.RawMessage) error {
	// Single local writer, so read-then-write is safe here.
	n, err := r.client.Document.Update().
		Where(document.KeyEQ(key)).
		SetValue([]byte(value)).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update document %q: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Document.Create().
		SetKey(key).
		SetValue([]byte(value)).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create document %q: %w", key, err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.Document.Delete().
		Where(document.KeyEQ(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}
