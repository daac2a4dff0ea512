package pipeline

import (
	"strings"
	"testing"
)

func sampleSections() []Section {
	return []Section{
		{Title: "One", Template: "standard"},
		{Img: "/two.jpg", Template: "hero"},
		{Header: "Three", Text: "3", Template: "text-only"},
	}
}

// ---------------------------------------------------------------------------
// TestCompose - Fragment and document output
// ---------------------------------------------------------------------------

func TestCompose_Fragment(t *testing.T) {
	t.Parallel()

	sections := sampleSections()
	got := Compose(sections, ComposeOptions{WrapFull: false})

	want := strings.Join([]string{
		RenderSection(sections[0]),
		RenderSection(sections[1]),
		RenderSection(sections[2]),
	}, "\n")

	if got != want {
		t.Errorf("Compose() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCompose_Empty(t *testing.T) {
	t.Parallel()

	if got := Compose(nil, ComposeOptions{}); got != "" {
		t.Errorf("Compose(nil) = %q, want empty", got)
	}

	doc := Compose(nil, ComposeOptions{WrapFull: true})
	if !strings.Contains(doc, "<body>\n\n</body>") {
		t.Errorf("empty document body not found in %q", doc)
	}
}

func TestCompose_WrapIsSuperset(t *testing.T) {
	t.Parallel()

	sections := sampleSections()
	fragment := Compose(sections, ComposeOptions{WrapFull: false})
	doc := Compose(sections, ComposeOptions{WrapFull: true})

	if len(doc) <= len(fragment) {
		t.Fatalf("document (%d bytes) not longer than fragment (%d bytes)", len(doc), len(fragment))
	}
	if !strings.Contains(doc, fragment) {
		t.Error("document does not contain the fragment")
	}
	if !strings.Contains(doc, "<body>\n"+fragment+"\n</body>") {
		t.Error("fragment is not the body interior")
	}
}

func TestCompose_DocumentShell(t *testing.T) {
	t.Parallel()

	doc := Compose(sampleSections(), ComposeOptions{WrapFull: true})

	if !strings.HasPrefix(doc, "<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n  <meta charset=\"UTF-8\">\n") {
		t.Errorf("unexpected document start: %q", doc[:80])
	}
	if !strings.HasSuffix(doc, "\n</body>\n</html>") {
		t.Errorf("unexpected document end: %q", doc[len(doc)-30:])
	}

	for _, want := range []string{
		`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		"<title>Generated</title>",
		".block { border: 1px solid #ddd; padding: 12px; border-radius: 10px; margin: 12px 0; }",
		".block.hero { text-align:center; }",
		".block.text-only .label { color:#666; font-size:12px; text-transform:uppercase; letter-spacing:.08em; }",
		"p { margin: 8px 0 0; white-space: normal; }\n  </style>\n</head>\n<body>\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestExtractBody - Body interior recovery
// ---------------------------------------------------------------------------

func TestExtractBody(t *testing.T) {
	t.Parallel()

	fragment := Compose(sampleSections(), ComposeOptions{})
	doc := WrapDocument(fragment)

	if got := ExtractBody(doc); got != "\n"+fragment+"\n" {
		t.Errorf("ExtractBody(doc) = %q, want fragment with surrounding newlines", got)
	}
	if got := ExtractBody(fragment); got != fragment {
		t.Errorf("ExtractBody(fragment) changed input: %q", got)
	}
	if got := ExtractBody("<!DOCTYPE html><p>no body</p>"); got != "<!DOCTYPE html><p>no body</p>" {
		t.Errorf("ExtractBody without body changed input: %q", got)
	}
}
