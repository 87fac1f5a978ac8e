package storage

import "strings"

// CIDPaths are the response fields that may carry a content id, in priority order.
var CIDPaths = []string{"data.cid", "data.Hash", "cid", "Hash"}

// FirstNonEmpty returns the first non-empty string found at one of the dotted
// paths in resp. Non-string values are skipped.
func FirstNonEmpty(resp map[string]interface{}, paths ...string) string {
	for _, path := range paths {
		if s := lookupString(resp, path); s != "" {
			return s
		}
	}
	return ""
}

// ExtractCID applies CIDPaths to an uploader response.
func ExtractCID(resp map[string]interface{}) string {
	return FirstNonEmpty(resp, CIDPaths...)
}

func lookupString(resp map[string]interface{}, path string) string {
	var cur interface{} = resp
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return ""
		}
		cur, ok = m[part]
		if !ok {
			return ""
		}
	}
	s, _ := cur.(string)
	return strings.TrimSpace(s)
}
