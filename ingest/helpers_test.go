package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/inflow/ai/mock"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/enrich"
	"github.com/poiesic/inflow/parse"
	"github.com/poiesic/inflow/storage"
	badgerstore "github.com/poiesic/inflow/storage/badger"
	"github.com/stretchr/testify/require"
)

const stubType core.DocumentType = "stub"

// memSource serves document content from memory.
type memSource struct {
	uri     string
	content []byte
}

func (s *memSource) URI() string             { return s.uri }
func (s *memSource) Type() core.DocumentType { return stubType }
func (s *memSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.content)), nil
}

// doc builds document metadata over an in-memory source. Each content line
// drives the stub parser: "text:v" yields a text element, "image:v" an
// intermediate image element, and "fail" a parse error.
func doc(uri, content string) core.DocumentMeta {
	return core.MetaFromSource(&memSource{uri: uri, content: []byte(content)})
}

// stubParser translates content lines into elements.
type stubParser struct{}

func (p *stubParser) Parse(ctx context.Context, fetched *core.FetchedDocument) ([]core.Element, error) {
	var elements []core.Element
	for i, line := range strings.Split(strings.TrimSpace(string(fetched.Content)), "\n") {
		kind, value, _ := strings.Cut(line, ":")
		switch kind {
		case "fail":
			return nil, fmt.Errorf("%w: always fails", parse.ErrParse)
		case "image":
			elements = append(elements, core.Element{
				ID:          core.IDFromContent(fmt.Sprintf("%s#%d:%s", fetched.Meta.URI, i, value)),
				Kind:        core.ElementKindImage,
				Raw:         []byte(value),
				SourceID:    fetched.Meta.SourceID,
				DocumentURI: fetched.Meta.URI,
			})
		default:
			elements = append(elements, core.Element{
				ID:          core.IDFromContent(fmt.Sprintf("%s#%d:%s", fetched.Meta.URI, i, value)),
				Kind:        core.ElementKindText,
				Text:        value,
				SourceID:    fetched.Meta.SourceID,
				DocumentURI: fetched.Meta.URI,
			})
		}
	}
	return elements, nil
}

// spyEnricher records invocations and captions image elements.
type spyEnricher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *spyEnricher) Enrich(ctx context.Context, elements []core.Element) ([]core.Element, error) {
	e.mu.Lock()
	e.calls++
	err := e.err
	e.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%w: %v", enrich.ErrEnrich, err)
	}

	out := make([]core.Element, 0, len(elements))
	for _, elem := range elements {
		enriched := elem
		enriched.Text = "caption of " + string(elem.Raw)
		enriched.Raw = nil
		out = append(out, enriched)
	}
	return out, nil
}

func (e *spyEnricher) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// flakyStore wraps a real store with injectable failures and call counting.
type flakyStore struct {
	inner storage.Store

	mu          sync.Mutex
	storeErr    func(entries []*core.Entry) error
	removeErr   error
	listErr     error
	storeCalls  int
	removeCalls int
}

var _ storage.Store = (*flakyStore)(nil)

func (s *flakyStore) Store(ctx context.Context, entries ...*core.Entry) error {
	s.mu.Lock()
	s.storeCalls++
	errFn := s.storeErr
	s.mu.Unlock()

	if errFn != nil {
		if err := errFn(entries); err != nil {
			return err
		}
	}
	return s.inner.Store(ctx, entries...)
}

func (s *flakyStore) Remove(ctx context.Context, ids ...core.ID) error {
	s.mu.Lock()
	s.removeCalls++
	err := s.removeErr
	s.mu.Unlock()

	if err != nil {
		return err
	}
	return s.inner.Remove(ctx, ids...)
}

func (s *flakyStore) List(ctx context.Context) ([]*core.Entry, error) {
	s.mu.Lock()
	err := s.listErr
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.inner.List(ctx)
}

func (s *flakyStore) Close() error {
	return s.inner.Close()
}

func (s *flakyStore) StoreCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeCalls
}

// testEnv wires stub collaborators around an in-memory badger store.
type testEnv struct {
	store     *flakyStore
	parsers   *parse.Router
	enrichers *enrich.Router
	spy       *spyEnricher
	embedder  *mock.Embedder
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	inner, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { inner.Close() })

	spy := &spyEnricher{}

	parsers := parse.NewRouter()
	require.NoError(t, parsers.Register(stubType, &stubParser{}))

	enrichers := enrich.NewRouter()
	require.NoError(t, enrichers.Register(core.ElementKindImage, spy))

	return &testEnv{
		store:     &flakyStore{inner: inner},
		parsers:   parsers,
		enrichers: enrichers,
		spy:       spy,
		embedder:  mock.NewEmbedder(),
	}
}

// testConfig returns a fast-backoff configuration for the given mode.
func testConfig(mode Mode) Config {
	return Config{
		Mode:              mode,
		Retries:           1,
		BackoffMultiplier: time.Millisecond,
		BackoffMax:        4 * time.Millisecond,
		BatchSize:         2,
		CPUWorkers:        2,
		IOWorkers:         2,
		IOBatchSize:       2,
	}
}

func newStrategy(t *testing.T, env *testEnv, cfg Config, opts ...Option) Strategy {
	t.Helper()
	s, err := New(cfg, env.store, env.parsers, env.enrichers, env.embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func listEntries(t *testing.T, env *testEnv) []*core.Entry {
	t.Helper()
	entries, err := env.store.List(context.Background())
	require.NoError(t, err)
	return entries
}
