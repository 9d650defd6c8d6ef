package symbols

// DefaultPrelude returns the host globals every program may reference
// without declaring them.
func DefaultPrelude() []string {
	return []string{
		"Array", "Boolean", "Date", "Error", "EvalError", "Function",
		"Infinity", "JSON", "Math", "NaN", "Number", "Object", "RangeError",
		"ReferenceError", "RegExp", "String", "SyntaxError", "TypeError",
		"URIError", "decodeURI", "decodeURIComponent", "encodeURI",
		"encodeURIComponent", "escape", "eval", "isFinite", "isNaN",
		"parseFloat", "parseInt", "undefined", "unescape",
		// browser host
		"alert", "clearInterval", "clearTimeout", "console", "document",
		"event", "history", "location", "navigator", "screen", "self",
		"setInterval", "setTimeout", "top", "window", "XMLHttpRequest",
		"WebSocket", "ActiveXObject",
	}
}

// MergePrelude combines the default host globals with user provided names.
func MergePrelude(custom []string) []string {
	defaults := DefaultPrelude()
	if len(custom) == 0 {
		return defaults
	}
	result := make([]string, 0, len(defaults)+len(custom))
	result = append(result, defaults...)
	result = append(result, custom...)
	return result
}
