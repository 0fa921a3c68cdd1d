package recmodel

import (
	"fmt"

	"github.com/reoring/recmodel/i18n"
)

// IssueAt creates an Issue at the given path with provided code, cause and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code string, cause error, params map[string]any) Issue {
	return newIssue(p.String(), code, cause, params)
}

// newIssue renders the message through i18n. A cause, when present, becomes
// the message detail.
func newIssue(path, code string, cause error, params map[string]any) Issue {
	var data map[string]string
	if cause != nil {
		data = map[string]string{"detail": cause.Error()}
	} else if d, ok := params["detail"]; ok {
		data = map[string]string{"detail": fmt.Sprint(d)}
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Cause: cause, Params: params}
}
