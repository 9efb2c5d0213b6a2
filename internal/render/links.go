// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "path/filepath"

// invalidPath stands in for a link target that cannot be expressed
// relative to the citing document.
const invalidPath = "invalid path"

// LinkPrefix returns the link target of the reference file as seen from
// docPath: empty when docPath is the reference file, otherwise the relative
// path with forward slashes.
func LinkPrefix(docPath, refsPath string) string {
	if samePath(docPath, refsPath) {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(docPath), refsPath)
	if err != nil {
		return invalidPath
	}
	return filepath.ToSlash(rel)
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
