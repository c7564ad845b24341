package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/positionfit/positionfit/internal/store"
	pkgneo4j "github.com/positionfit/positionfit/pkg/neo4j"
)

var _ store.Store = (*UserDataStore)(nil)

// UserDataStore keeps one :UserData node per store key, with the serialized
// aggregate in the payload property. Writes replace the payload wholesale;
// concurrent writers on the same key race last-writer-wins by design of the
// store contract.
type UserDataStore struct {
	client *pkgneo4j.Client
}

// NewUserDataStore creates a Neo4j-backed store.
func NewUserDataStore(client *pkgneo4j.Client) *UserDataStore {
	return &UserDataStore{client: client}
}

func (s *UserDataStore) Get(ctx context.Context, key string) ([]byte, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	payload, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx,
			`MATCH (u:UserData {key: $key}) RETURN u.payload AS payload`,
			map[string]any{"key": key},
		)
		if err != nil {
			return nil, err
		}

		record, err := result.Single(ctx)
		if err != nil {
			// Single reports an error for zero records too.
			return nil, store.ErrNotFound
		}

		value, ok := record.Get("payload")
		if !ok {
			return nil, store.ErrNotFound
		}

		text, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected payload type %T for key %q", value, key)
		}

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return []byte(payload.(string)), nil
}

func (s *UserDataStore) Put(ctx context.Context, key string, value []byte) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx,
			`MERGE (u:UserData {key: $key})
			 SET u.payload = $payload, u.updatedAt = datetime()`,
			map[string]any{"key": key, "payload": string(value)},
		)
	})
	if err != nil {
		return fmt.Errorf("put user data %q: %w", key, err)
	}

	return nil
}

func (s *UserDataStore) Delete(ctx context.Context, key string) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx,
			`MATCH (u:UserData {key: $key}) DETACH DELETE u`,
			map[string]any{"key": key},
		)
	})
	if err != nil {
		return fmt.Errorf("delete user data %q: %w", key, err)
	}

	return nil
}
