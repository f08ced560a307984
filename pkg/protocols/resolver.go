package protocols

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/observability"
)

// DefaultMemoSize is the number of declaring files a Session remembers
const DefaultMemoSize = 256

// Session is the per-run state of protocol lookups: an optional memo of declaring file to
// members, and the metrics lookups are recorded on. A nil Session is valid; every lookup
// then re-parses the declaring file.
type Session struct {
	memo    *lru.Cache[string, []Member]
	metrics *observability.Metrics
}

// NewSession creates the lookup state for one run. A memoSize of zero or less disables
// memoization.
func NewSession(memoSize int, metrics *observability.Metrics) *Session {
	s := &Session{metrics: metrics}
	if memoSize > 0 {
		// lru.New only fails for non-positive sizes
		s.memo, _ = lru.New[string, []Member](memoSize)
	}
	return s
}

func (s *Session) get(path string) ([]Member, bool) {
	if s == nil || s.memo == nil {
		return nil, false
	}
	members, ok := s.memo.Get(path)
	if ok {
		s.record(observability.LookupMemoHit)
	}
	return members, ok
}

func (s *Session) put(path string, members []Member) {
	if s == nil || s.memo == nil {
		return
	}
	s.memo.Add(path, members)
}

func (s *Session) record(result string) {
	if s == nil {
		return
	}
	s.metrics.RecordProtocolLookup(result)
}

// Resolver finds the members of inherited protocols through the cache
type Resolver struct {
	cache  *Cache
	parser decl.Parser
}

// NewResolver creates a resolver. A nil parser resolves nothing.
func NewResolver(cache *Cache, parser decl.Parser) *Resolver {
	return &Resolver{cache: cache, parser: parser}
}

// Cache returns the protocol cache used by the resolver
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Members returns the members of every protocol declared in the file the cache records for
// typeName. Unknown types and unparsable files contribute no members.
func (r *Resolver) Members(ctx context.Context, typeName string, session *Session) []Member {
	path, ok := r.cache.Lookup(typeName)
	if !ok || r.parser == nil {
		session.record(observability.LookupUncached)
		return nil
	}

	if members, ok := session.get(path); ok {
		return members
	}

	file, err := r.parser.Parse(ctx, path)
	if err != nil {
		observability.FromContext(ctx).
			WithFields(map[string]interface{}{"type": typeName, "path": path}).
			WithError(err).
			Debug("protocol file could not be parsed")
		session.record(observability.LookupParseError)
		session.put(path, nil)
		return nil
	}

	var members []Member
	if file != nil {
		members = MembersOfFile(file.Root)
	}
	session.record(observability.LookupResolved)
	session.put(path, members)
	return members
}
