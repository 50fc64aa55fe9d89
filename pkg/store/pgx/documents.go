package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
	"github.com/OFFIS-RIT/greenlens/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pgvector/pgvector-go"
)

const insertBatchSize = 500

const similarityQuery = `
SELECT content, source, page
FROM report_chunks
WHERE collection = $1
ORDER BY embedding <=> $2
LIMIT $3`

const insertChunk = `
INSERT INTO report_chunks (id, collection, source, page, content, embedding)
VALUES ($1, $2, $3, $4, $5, $6)`

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// DocumentDBStore implements store.DocumentStore on PostgreSQL with pgvector.
// Rows of other collections in the same table are never returned.
type DocumentDBStore struct {
	conn       pgxIConn
	embedder   store.Embedder
	collection string
}

type DocumentDBStoreOption func(*DocumentDBStore)

// WithCollection scopes the store to a named collection.
func WithCollection(name string) DocumentDBStoreOption {
	return func(s *DocumentDBStore) {
		if name != "" {
			s.collection = name
		}
	}
}

// NewDocumentDBStoreWithConnection creates a DocumentDBStore on an existing
// connection or pool. The pool must have the pgvector types registered.
func NewDocumentDBStoreWithConnection(
	conn pgxIConn,
	embedder store.Embedder,
	opts ...DocumentDBStoreOption,
) (*DocumentDBStore, error) {
	if conn == nil {
		return nil, errors.New("connection is nil")
	}
	if embedder == nil {
		return nil, errors.New("embedder is nil")
	}
	s := &DocumentDBStore{
		conn:       conn,
		embedder:   embedder,
		collection: store.DefaultCollection,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// SimilaritySearch embeds query and returns the k nearest chunks by cosine distance.
func (s *DocumentDBStore) SimilaritySearch(ctx context.Context, query string, k int) ([]common.Document, error) {
	if k <= 0 {
		return nil, nil
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, []byte(query))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.conn.Query(ctx, similarityQuery, s.collection, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]common.Document, 0, k)
	for rows.Next() {
		var (
			content string
			source  string
			page    *int32
		)
		if err := rows.Scan(&content, &source, &page); err != nil {
			return nil, err
		}
		docs = append(docs, toDocument(content, source, page))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// AddDocuments embeds and inserts docs in batches, one transaction per batch.
func (s *DocumentDBStore) AddDocuments(ctx context.Context, docs []common.Document) error {
	if len(docs) == 0 {
		return nil
	}

	logger.Debug("[Store][AddDocuments] Inserting report chunks", "chunks", len(docs), "collection", s.collection)

	return store.ChunkRange(len(docs), insertBatchSize, func(start, end int) error {
		inputs := make([][]byte, 0, end-start)
		for _, d := range docs[start:end] {
			inputs = append(inputs, []byte(d.Content))
		}
		embeddings, err := store.GenerateEmbeddings(ctx, s.embedder, inputs)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}

		tx, err := s.conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		batch := &pgxv5.Batch{}
		for i, d := range docs[start:end] {
			id, err := gonanoid.New()
			if err != nil {
				return err
			}
			batch.Queue(insertChunk,
				id,
				s.collection,
				d.Metadata.SourceOrUnknown(),
				pageParam(d.Metadata.Page),
				util.SanitizePostgresText(d.Content),
				pgvector.NewVector(embeddings[i]),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
}

func toDocument(content, source string, page *int32) common.Document {
	doc := common.Document{
		Content:  content,
		Metadata: common.DocumentMetadata{Source: source},
	}
	if page != nil {
		doc.Metadata.Page = common.Page(int(*page))
	}
	return doc
}

func pageParam(p common.PageRef) *int32 {
	if !p.Valid {
		return nil
	}
	n := int32(p.Number)
	return &n
}
