package ports

// InputResolver expands path patterns at registration time.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// Expand resolves a path pattern to concrete paths. A pattern without
	// wildcard characters is returned as-is, in a single-element slice.
	// Patterns support *, ? and ** segments.
	Expand(pattern string) ([]string, error)
}
