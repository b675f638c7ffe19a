package config

// TreeFileExtensions are all recognized tree document extensions.
// JSON documents are read by the same YAML decoder.
var TreeFileExtensions = []string{".yaml", ".yml", ".json"}

// ConfigFileName is looked up in the working directory when -config is not given.
const ConfigFileName = "ember.yaml"

// DefaultMaxDepth is the maximum nesting depth of Eval calls.
// Each level costs a few Go frames, so this stays well below the goroutine stack limit.
const DefaultMaxDepth = 10000

// Scope policy names
const (
	ScopeDynamic = "dynamic"
	ScopeGlobal  = "global"
)

// Color modes for diagnostics
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
