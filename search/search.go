// Package search is an in-memory full-text index over a record collection.
// Titles and descriptions in both languages are indexed; a query matches
// records in which every query word is a word, or the start of a word, of
// any indexed field.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/analysis/token/edgengram"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/sky-flux/deck"
)

var (
	ErrEmptyQuery = errors.New("search: empty query")
	ErrClosed     = errors.New("search: index closed")
)

// DefaultLimit caps the number of hits when Query is called with limit <= 0.
const DefaultLimit = 10

const (
	prefixAnalyzerName    = "deckPrefix"
	prefixTokenFilterName = "deckEdgeNgram"
)

var textFields = []string{"title_en", "description_en", "title_fr", "description_fr"}

// Hit is one search result.
type Hit struct {
	ID    int64
	Score float64
}

// Index is safe for concurrent use.
type Index struct {
	mu sync.RWMutex
	bi bleve.Index
}

func buildMapping() (mapping.IndexMapping, error) {
	docMapping := bleve.NewDocumentMapping()
	for _, name := range textFields {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = prefixAnalyzerName
		docMapping.AddFieldMappingsAt(name, field)
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = docMapping
	m.DefaultAnalyzer = prefixAnalyzerName

	if err := m.AddCustomTokenFilter(prefixTokenFilterName, map[string]interface{}{
		"type": edgengram.Name,
		"min":  1.0,
		"max":  25.0,
	}); err != nil {
		return nil, fmt.Errorf("search: add token filter: %w", err)
	}
	if err := m.AddCustomAnalyzer(prefixAnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []string{
			lowercase.Name,
			prefixTokenFilterName,
		},
	}); err != nil {
		return nil, fmt.Errorf("search: add analyzer: %w", err)
	}
	return m, nil
}

func document(r deck.Record) map[string]interface{} {
	return map[string]interface{}{
		"title_en":       r.TitleEN,
		"description_en": r.DescriptionEN,
		"title_fr":       r.TitleFR,
		"description_fr": r.DescriptionFR,
	}
}

func build(records []deck.Record) (bleve.Index, error) {
	m, err := buildMapping()
	if err != nil {
		return nil, err
	}
	bi, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("search: create index: %w", err)
	}

	batch := bi.NewBatch()
	for _, r := range records {
		if err := batch.Index(strconv.FormatInt(r.ID, 10), document(r)); err != nil {
			bi.Close()
			return nil, fmt.Errorf("search: index record %d: %w", r.ID, err)
		}
	}
	if err := bi.Batch(batch); err != nil {
		bi.Close()
		return nil, fmt.Errorf("search: index batch: %w", err)
	}
	return bi, nil
}

// New indexes records.
func New(records []deck.Record) (*Index, error) {
	bi, err := build(records)
	if err != nil {
		return nil, err
	}
	return &Index{bi: bi}, nil
}

// Len returns the number of indexed records.
func (idx *Index) Len() (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.bi == nil {
		return 0, ErrClosed
	}
	n, err := idx.bi.DocCount()
	return int(n), err
}

// Query returns up to limit hits for terms, best first. limit <= 0 means
// DefaultLimit. A single letter is a valid prefix and matches every record
// with a word starting with it.
func (idx *Index) Query(ctx context.Context, terms string, limit int) ([]Hit, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	match := bleve.NewMatchQuery(terms)
	match.Analyzer = prefixAnalyzerName
	match.Operator = query.MatchQueryOperatorAnd
	req := bleve.NewSearchRequestOptions(match, limit, 0, false)

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.bi == nil {
		return nil, ErrClosed
	}
	res, err := idx.bi.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", terms, err)
	}

	out := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Hit{ID: id, Score: h.Score})
	}
	return out, nil
}

// Close releases the index. Further queries return ErrClosed.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.bi == nil {
		return nil
	}
	err := idx.bi.Close()
	idx.bi = nil
	return err
}
