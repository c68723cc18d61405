package schema

import "strings"

const (
	symbolPrefix  = "icu4x_"
	symbolVersion = "_mv1"
)

// Symbol returns the entry point name of method on typ.
func Symbol(typ, method string) string {
	return symbolPrefix + typ + "_" + method + symbolVersion
}

// Destructor returns the entry point that destroys an object of typ.
func Destructor(typ string) string {
	return Symbol(typ, "destroy")
}

// SplitSymbol splits an entry point name into its type and method.
// Type names never contain underscores; method names may.
func SplitSymbol(symbol string) (typ, method string, ok bool) {
	rest, ok := strings.CutPrefix(symbol, symbolPrefix)
	if !ok {
		return "", "", false
	}
	rest, ok = strings.CutSuffix(rest, symbolVersion)
	if !ok {
		return "", "", false
	}
	typ, method, ok = strings.Cut(rest, "_")
	if !ok || typ == "" || method == "" {
		return "", "", false
	}
	return typ, method, true
}
