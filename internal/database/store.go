package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Record Store. A Store built without a pool answers every call
// with ErrUnavailable.
type Store struct {
	pool *pgxpool.Pool
	*Queries
}

func NewStore(pool *pgxpool.Pool) *Store {
	s := &Store{pool: pool, Queries: &Queries{}}
	if pool != nil {
		s.Queries = New(pool)
	}
	return s
}

func (s *Store) Available() bool {
	return s.pool != nil
}

func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return ErrUnavailable
	}
	return classify(s.pool.Ping(ctx))
}

func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	if !s.Available() {
		return ErrUnavailable
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
