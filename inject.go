package aframe

import "strings"

// spliceBeforeHeadClose inserts block before </head>. Falls back to
// prepending when the document has no head.
func spliceBeforeHeadClose(doc, block string) string {
	lower := strings.ToLower(doc)
	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return doc[:idx] + block + doc[idx:]
	}
	return block + doc
}

// spliceBeforeBodyClose inserts block before </body>. Falls back to
// appending when the document has no body.
func spliceBeforeBodyClose(doc, block string) string {
	lower := strings.ToLower(doc)
	if idx := strings.Index(lower, "</body>"); idx != -1 {
		return doc[:idx] + block + doc[idx:]
	}
	return doc + block
}

// sanitizeCSS escapes sequences that could break out of a <style>
// block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
