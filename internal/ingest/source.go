// Package ingest is the producer side of the pipeline: a comment source
// feeding the ingestion queue through the API quota guard. The crawler
// proper lives elsewhere; only its role as a record producer appears here.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
)

// Source yields comments one at a time. Next returns ErrSourceExhausted
// once no more records are available.
type Source interface {
	Next(ctx context.Context) (domain.Comment, error)
}

// SliceSource serves a fixed set of comments, mainly for tests and replays.
type SliceSource struct {
	comments []domain.Comment
	pos      int
}

func NewSliceSource(comments []domain.Comment) *SliceSource {
	return &SliceSource{comments: comments}
}

func (s *SliceSource) Next(_ context.Context) (domain.Comment, error) {
	if s.pos >= len(s.comments) {
		return domain.Comment{}, apperrors.ErrSourceExhausted
	}

	c := s.comments[s.pos]
	s.pos++

	return c, nil
}

// ReaderSource decodes one JSON comment per line. Records without an id get
// a generated one, as the producer owns id assignment.
type ReaderSource struct {
	scanner *bufio.Scanner
}

func NewReaderSource(r io.Reader) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &ReaderSource{scanner: scanner}
}

func (s *ReaderSource) Next(_ context.Context) (domain.Comment, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var c domain.Comment
		if err := json.Unmarshal(line, &c); err != nil {
			return domain.Comment{}, fmt.Errorf("decode comment line: %w", err)
		}

		if c.ID == "" {
			c.ID = uuid.NewString()
		}

		return c, nil
	}

	if err := s.scanner.Err(); err != nil {
		return domain.Comment{}, fmt.Errorf("read comment line: %w", err)
	}

	return domain.Comment{}, apperrors.ErrSourceExhausted
}
