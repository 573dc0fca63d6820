package parser

import (
	"os"
	"regexp"
)

// Resolver substitutes named placeholders in raw contract text before any
// YAML interpretation. Implementations must be pure: same input, same
// output, no I/O beyond whatever variable source was bound at construction.
type Resolver interface {
	Resolve(text string) string
}

// placeholderPattern matches ${NAME} placeholders.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// NoopResolver leaves the text untouched. It is the parser's default.
type NoopResolver struct{}

// Resolve returns text unchanged.
func (NoopResolver) Resolve(text string) string { return text }

// MapResolver substitutes ${NAME} placeholders from a fixed map. Placeholders
// with no entry in the map are left as written.
type MapResolver struct {
	Variables map[string]string
}

// NewMapResolver creates a resolver over the given variable map.
func NewMapResolver(variables map[string]string) *MapResolver {
	return &MapResolver{Variables: variables}
}

// Resolve substitutes known placeholders and leaves unknown ones as-is.
func (r *MapResolver) Resolve(text string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := r.Variables[name]; ok {
			return value
		}
		return match
	})
}

// EnvResolver substitutes ${NAME} placeholders from the process environment.
// The environment is captured at construction time so resolution stays pure.
// Placeholders without a matching variable are left as written.
type EnvResolver struct {
	inner *MapResolver
}

// NewEnvResolver captures the current process environment.
func NewEnvResolver() *EnvResolver {
	variables := make(map[string]string)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				variables[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return &EnvResolver{inner: NewMapResolver(variables)}
}

// Resolve substitutes placeholders from the captured environment.
func (r *EnvResolver) Resolve(text string) string {
	return r.inner.Resolve(text)
}
