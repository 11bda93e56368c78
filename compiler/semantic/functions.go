package semantic

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// funcDef describes one built-in scalar function for argument checking.
// MaxArgs of -1 means variadic.
type funcDef struct {
	name    string
	minArgs int
	maxArgs int
}

// builtins is the closed registry of scalar functions known to the
// validator, matched case-insensitively.  Aggregates are kept separately
// (see ast.IsAggregateName) because they are only legal in grouped output.
var builtins = map[string]funcDef{
	"abs":        {"abs", 1, 1},
	"floor":      {"floor", 1, 1},
	"ceil":       {"ceil", 1, 1},
	"round":      {"round", 1, 2},
	"sqrt":       {"sqrt", 1, 1},
	"cbrt":       {"cbrt", 1, 1},
	"pow":        {"pow", 2, 2},
	"exp":        {"exp", 1, 1},
	"log":        {"log", 1, 1},
	"log2":       {"log2", 1, 1},
	"log10":      {"log10", 1, 1},
	"sin":        {"sin", 1, 1},
	"cos":        {"cos", 1, 1},
	"tan":        {"tan", 1, 1},
	"rand":       {"rand", 0, 0},
	"rand32":     {"rand32", 0, 2},
	"rand64":     {"rand64", 0, 2},
	"now":        {"now", 0, 0},
	"date":       {"date", 0, 1},
	"time":       {"time", 0, 1},
	"datetime":   {"datetime", 0, 1},
	"timestamp":  {"timestamp", 0, 1},
	"lower":      {"lower", 1, 1},
	"upper":      {"upper", 1, 1},
	"length":     {"length", 1, 1},
	"trim":       {"trim", 1, 1},
	"ltrim":      {"ltrim", 1, 1},
	"rtrim":      {"rtrim", 1, 1},
	"left":       {"left", 2, 2},
	"right":      {"right", 2, 2},
	"replace":    {"replace", 3, 3},
	"reverse":    {"reverse", 1, 1},
	"split":      {"split", 2, 2},
	"substr":     {"substr", 2, 3},
	"strcasecmp": {"strcasecmp", 2, 2},
	"hash":       {"hash", 1, 1},
	"size":       {"size", 1, 1},
	"range":      {"range", 2, 3},
	"head":       {"head", 1, 1},
	"last":       {"last", 1, 1},
	"coalesce":   {"coalesce", 1, -1},
	"keys":       {"keys", 1, 1},
	"labels":     {"labels", 1, 1},
	"nodes":      {"nodes", 1, 1},
	"relationships": {
		"relationships", 1, 1,
	},
	"type":       {"type", 1, 1},
	"typeid":     {"typeid", 1, 1},
	"id":         {"id", 1, 1},
	"src":        {"src", 1, 1},
	"dst":        {"dst", 1, 1},
	"rank":       {"rank", 1, 1},
	"properties": {"properties", 1, 1},
	"tostring":   {"tostring", 1, 1},
	"tointeger":  {"tointeger", 1, 1},
	"tofloat":    {"tofloat", 1, 1},
	"toboolean":  {"toboolean", 1, 1},
}

// lookupFunction resolves name case-insensitively.
func lookupFunction(name string) (funcDef, bool) {
	def, ok := builtins[strings.ToLower(name)]
	return def, ok
}

// suggestFunction returns the registered function name closest to name if
// the edit distance is small enough to be a plausible typo, else "".
func suggestFunction(name string) string {
	const maxDistance = 2
	lower := strings.ToLower(name)
	best := ""
	bestDist := maxDistance + 1
	for candidate := range builtins {
		if d := levenshtein.ComputeDistance(lower, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	for _, agg := range []string{"count", "sum", "avg", "max", "min", "collect", "stddev"} {
		if d := levenshtein.ComputeDistance(lower, agg); d < bestDist {
			best, bestDist = agg, d
		}
	}
	return best
}
