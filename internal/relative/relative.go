// Package relative builds relative links between pages of the generated site.
//
// Page locations are /-separated paths relative to the site root,
// with "" referring to the root itself.
package relative

import "strings"

// Path returns a path to dst, relative to the directory src.
// Both paths must be relative to the same root and /-separated.
//
// A trailing slash on dst is preserved.
func Path(src, dst string) string {
	srcParts := split(strings.TrimSuffix(src, "/"))
	dstParts := split(dst)

	n := 0
	for n < len(srcParts) && n < len(dstParts) && srcParts[n] == dstParts[n] {
		n++
	}

	parts := make([]string, 0, len(srcParts)-n+len(dstParts)-n)
	for range srcParts[n:] {
		parts = append(parts, "..")
	}
	parts = append(parts, dstParts[n:]...)
	return strings.Join(parts, "/")
}

// Link is like Path, but it never returns an empty string:
// a link from a directory to itself is "./".
// Use it for href attributes.
func Link(src, dst string) string {
	if p := Path(src, dst); p != "" {
		return p
	}
	return "./"
}

func split(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
