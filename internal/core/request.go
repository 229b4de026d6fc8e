// AngelaMos | 2026
// request.go

package core

import (
	"net/http"
	"strconv"
)

// QueryInt reads an integer query parameter. Missing or unparsable values
// yield def; range checks are left to the caller.
func QueryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
