package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/agency-backend/internal/db"
)

// uniqueViolation - код ошибки PostgreSQL для нарушения первичного ключа.
const uniqueViolation = "23505"

// PostgresCollection хранит те же JSON-документы в таблице documents (см. migrations).
// Записи одной коллекции сериализуются advisory-блокировкой транзакции,
// это аналог блокировки файла у FileCollection.
type PostgresCollection[T Document] struct {
	db   *sqlx.DB
	name string
}

func NewPostgresCollection[T Document](conn *sqlx.DB, name string) *PostgresCollection[T] {
	return &PostgresCollection[T]{db: conn, name: name}
}

type documentRow struct {
	ID   string `db:"id"`
	Body []byte `db:"body"`
}

func (c *PostgresCollection[T]) All(ctx context.Context) ([]T, error) {
	var rows []documentRow
	query := `SELECT id, body FROM documents WHERE collection = $1 ORDER BY created_at, id`
	if err := c.db.SelectContext(ctx, &rows, query, c.name); err != nil {
		return nil, fmt.Errorf("docstore: не удалось получить коллекцию %s: %w", c.name, err)
	}
	return decodeRows[T](rows)
}

func (c *PostgresCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var row documentRow
	query := `SELECT id, body FROM documents WHERE collection = $1 AND id = $2`
	if err := c.db.GetContext(ctx, &row, query, c.name, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("docstore: не удалось получить документ %s: %w", id, err)
	}
	return decode[T](row.Body)
}

func (c *PostgresCollection[T]) Insert(ctx context.Context, doc T, check CheckFunc[T]) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: не удалось сериализовать документ: %w", err)
	}

	return db.WithTransaction(ctx, c.db, func(tx *sqlx.Tx) error {
		if err := c.lock(ctx, tx); err != nil {
			return err
		}
		if check != nil {
			existing, err := c.allTx(ctx, tx)
			if err != nil {
				return err
			}
			if err := check(doc, existing); err != nil {
				return err
			}
		}

		query := `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, query, c.name, doc.DocumentID(), body); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return ErrDuplicateID
			}
			return fmt.Errorf("docstore: не удалось вставить документ: %w", err)
		}
		return nil
	})
}

func (c *PostgresCollection[T]) Update(ctx context.Context, id string, mutate func(doc *T) error, check CheckFunc[T]) (T, error) {
	var updated T
	err := db.WithTransaction(ctx, c.db, func(tx *sqlx.Tx) error {
		if err := c.lock(ctx, tx); err != nil {
			return err
		}

		var row documentRow
		query := `SELECT id, body FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, c.name, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("docstore: не удалось заблокировать документ %s: %w", id, err)
		}

		doc, err := decode[T](row.Body)
		if err != nil {
			return err
		}
		if err := mutate(&doc); err != nil {
			return err
		}
		if doc.DocumentID() != id {
			return fmt.Errorf("docstore: нельзя менять id документа %s", id)
		}
		if check != nil {
			all, err := c.allTx(ctx, tx)
			if err != nil {
				return err
			}
			if err := check(doc, others(all, id)); err != nil {
				return err
			}
		}

		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("docstore: не удалось сериализовать документ: %w", err)
		}
		update := `UPDATE documents SET body = $3, updated_at = NOW() WHERE collection = $1 AND id = $2`
		if _, err := tx.ExecContext(ctx, update, c.name, id, body); err != nil {
			return fmt.Errorf("docstore: не удалось обновить документ %s: %w", id, err)
		}
		updated = doc
		return nil
	})
	return updated, err
}

func (c *PostgresCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	var body []byte
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING body`
	if err := c.db.GetContext(ctx, &body, query, c.name, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("docstore: не удалось удалить документ %s: %w", id, err)
	}
	return decode[T](body)
}

func (c *PostgresCollection[T]) lock(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, c.name); err != nil {
		return fmt.Errorf("docstore: не удалось заблокировать коллекцию %s: %w", c.name, err)
	}
	return nil
}

func (c *PostgresCollection[T]) allTx(ctx context.Context, tx *sqlx.Tx) ([]T, error) {
	var rows []documentRow
	query := `SELECT id, body FROM documents WHERE collection = $1 ORDER BY created_at, id`
	if err := tx.SelectContext(ctx, &rows, query, c.name); err != nil {
		return nil, fmt.Errorf("docstore: не удалось получить коллекцию %s: %w", c.name, err)
	}
	return decodeRows[T](rows)
}

func decode[T Document](body []byte) (T, error) {
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("docstore: повреждён документ: %w", err)
	}
	return doc, nil
}

func decodeRows[T Document](rows []documentRow) ([]T, error) {
	docs := make([]T, 0, len(rows))
	for _, r := range rows {
		doc, err := decode[T](r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w (id %s)", err, r.ID)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
