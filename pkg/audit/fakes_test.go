package audit

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/common"
	"github.com/OFFIS-RIT/greenlens/pkg/search"
)

type responder func(prompt string) (string, error)

// fakeLLM answers each schema tag with a scripted responder and counts calls.
type fakeLLM struct {
	mu       sync.Mutex
	handlers map[ai.SchemaTag]responder
	calls    map[ai.SchemaTag]int
	prompts  map[ai.SchemaTag][]string
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{
		handlers: map[ai.SchemaTag]responder{},
		calls:    map[ai.SchemaTag]int{},
		prompts:  map[ai.SchemaTag][]string{},
	}
}

func (f *fakeLLM) on(tag ai.SchemaTag, r responder) *fakeLLM {
	f.handlers[tag] = r
	return f
}

func (f *fakeLLM) reply(tag ai.SchemaTag, content string) *fakeLLM {
	return f.on(tag, func(string) (string, error) { return content, nil })
}

func (f *fakeLLM) fail(tag ai.SchemaTag, err error) *fakeLLM {
	return f.on(tag, func(string) (string, error) { return "", err })
}

func (f *fakeLLM) callCount(tag ai.SchemaTag) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[tag]
}

func (f *fakeLLM) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeLLM) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	tag := ai.SchemaTag(name)
	f.mu.Lock()
	f.calls[tag]++
	f.prompts[tag] = append(f.prompts[tag], prompt)
	h, ok := f.handlers[tag]
	f.mu.Unlock()

	if !ok {
		return errors.New("no scripted response for " + name)
	}
	content, err := h(prompt)
	if err != nil {
		return err
	}
	return ai.DecodeStructured(content, out)
}

func (f *fakeLLM) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return nil, errors.New("not used")
}

func (f *fakeLLM) ResetMetrics()               {}
func (f *fakeLLM) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

// fakeStore returns fixed documents per query.
type fakeStore struct {
	byQuery map[string][]common.Document
	err     error
	calls   int
	ks      []int
}

func (s *fakeStore) SimilaritySearch(ctx context.Context, query string, k int) ([]common.Document, error) {
	s.calls++
	s.ks = append(s.ks, k)
	if s.err != nil {
		return nil, s.err
	}
	return s.byQuery[query], nil
}

func (s *fakeStore) AddDocuments(ctx context.Context, docs []common.Document) error {
	return errors.New("read only")
}

// fakeSearch returns fixed results per query; queries listed in errs fail.
type fakeSearch struct {
	results map[string][]search.Result
	errs    map[string]error
	queries []string
}

func (s *fakeSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	if err, ok := s.errs[query]; ok {
		return nil, err
	}
	return s.results[query], nil
}

func doc(content, source string, page int) common.Document {
	return common.Document{
		Content:  content,
		Metadata: common.DocumentMetadata{Source: source, Page: common.Page(page)},
	}
}

func newTestAuditor(llm *fakeLLM, st *fakeStore, web *fakeSearch, opts ...Option) *Auditor {
	if st == nil {
		st = &fakeStore{}
	}
	if web == nil {
		web = &fakeSearch{}
	}
	a, err := NewAuditor(llm, st, web, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
