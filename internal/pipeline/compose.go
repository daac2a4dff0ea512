package pipeline

import "strings"

// documentHead and documentTail form the standalone document shell.
// Consumers diff generated files, so both are kept byte-for-byte stable.
const documentHead = `<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Generated</title>
  <style>
    body { font-family: "Noto Sans JP", system-ui, -apple-system, "Segoe UI", Roboto, Helvetica, Arial; line-height:1.7; margin: 20px; }
    .block { border: 1px solid #ddd; padding: 12px; border-radius: 10px; margin: 12px 0; }
    .block.hero { text-align:center; }
    .block.hero img { max-width:100%; border-radius:12px; }
    .block.hero .hero-title { font-size:1.5rem; margin: 10px 0 0; }
    .block.text-only .label { color:#666; font-size:12px; text-transform:uppercase; letter-spacing:.08em; }
    img { max-width: 100%; display:block; border-radius: 8px; }
    h2, h3 { margin: 0 0 8px; }
    p { margin: 8px 0 0; white-space: normal; }
  </style>
</head>
<body>
`

const documentTail = `
</body>
</html>`

// ComposeOptions controls the output shape of Compose.
type ComposeOptions struct {
	WrapFull bool // wrap fragments in the standalone document shell
}

// JoinFragments renders each section and joins the fragments with newlines.
func JoinFragments(sections []Section) string {
	fragments := make([]string, len(sections))
	for i, sec := range sections {
		fragments[i] = RenderSection(sec)
	}
	return strings.Join(fragments, "\n")
}

// WrapDocument places body inside the standalone document shell.
func WrapDocument(body string) string {
	return documentHead + body + documentTail
}

// Compose renders sections in order. With WrapFull the result is a complete
// HTML document; otherwise it is the bare fragment list.
func Compose(sections []Section, opts ComposeOptions) string {
	body := JoinFragments(sections)
	if !opts.WrapFull {
		return body
	}
	return WrapDocument(body)
}

// ExtractBody returns the content between <body> and </body> of a document
// containing a doctype. Anything else is returned unchanged.
func ExtractBody(doc string) string {
	if !strings.Contains(doc, "<!DOCTYPE html>") {
		return doc
	}
	_, after, ok := strings.Cut(doc, "<body>")
	if !ok {
		return doc
	}
	inner, _, ok := strings.Cut(after, "</body>")
	if !ok {
		return doc
	}
	return inner
}
