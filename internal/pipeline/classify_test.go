package pipeline

// Notes:
// - Classify is a fold; tests drive it with row literals rather than CSV so
//   that tokenizer behavior does not leak into classification failures.
// - step/flush are covered through Classify; isHeader has its own table
//   because precedence is the subtle part.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestClassify - Section grouping
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		want []Section
	}{
		{
			name: "no rows",
			rows: nil,
			want: nil,
		},
		{
			name: "single empty row from empty input",
			rows: [][]string{{""}},
			want: nil,
		},
		{
			name: "blank row flushes, next row opens anonymous section",
			rows: [][]string{
				{"", "テストタイトル", "Hello"},
				{"", "", ""},
				{"", "画像パス", "/a.jpg"},
			},
			want: []Section{
				{Title: "Hello", Template: "standard"},
				{Img: "/a.jpg", Template: "standard"},
			},
		},
		{
			name: "header opens named section",
			rows: [][]string{
				{"", "お知らせ"},
				{"", "テストタイトル", "T"},
				{"", "本文", "body"},
			},
			want: []Section{
				{Header: "お知らせ", Title: "T", Text: "body", Template: "standard"},
			},
		},
		{
			name: "header-only section is emitted",
			rows: [][]string{
				{"", "見出し", ""},
				{""},
			},
			want: []Section{
				{Header: "見出し", Template: "standard"},
			},
		},
		{
			name: "new header closes previous section",
			rows: [][]string{
				{"", "A"},
				{"", "テキスト", "one"},
				{"", "B"},
				{"", "テキスト", "two"},
			},
			want: []Section{
				{Header: "A", Text: "one", Template: "standard"},
				{Header: "B", Text: "two", Template: "standard"},
			},
		},
		{
			name: "text appends with newline in order",
			rows: [][]string{
				{"", "テキスト", "first"},
				{"", "本文", "second"},
				{"", "テキスト2", "third"},
			},
			want: []Section{
				{Text: "first\nsecond\nthird", Template: "standard"},
			},
		},
		{
			name: "empty text value after text appends trailing newline",
			rows: [][]string{
				{"", "テキスト", "first"},
				{"", "テキスト", ""},
			},
			want: []Section{
				{Text: "first\n", Template: "standard"},
			},
		},
		{
			name: "title and image are last write wins",
			rows: [][]string{
				{"", "テストタイトル", "old"},
				{"", "画像パス", "/old.jpg"},
				{"", "テストタイトル", "new"},
				{"", "画像パス", "/new.jpg"},
			},
			want: []Section{
				{Title: "new", Img: "/new.jpg", Template: "standard"},
			},
		},
		{
			name: "unknown key with value is ignored but opens a section",
			rows: [][]string{
				{"", "memo", "ignored"},
			},
			want: nil,
		},
		{
			name: "unknown rows do not disturb the open section",
			rows: [][]string{
				{"", "テストタイトル", "T"},
				{"", "memo", "ignored"},
				{"x", "", "y"},
			},
			want: []Section{
				{Title: "T", Template: "standard"},
			},
		},
		{
			name: "consecutive blank rows emit nothing extra",
			rows: [][]string{
				{"", "テストタイトル", "T"},
				{"", "", ""},
				{" "},
				{},
			},
			want: []Section{
				{Title: "T", Template: "standard"},
			},
		},
		{
			name: "full-width space in key is normalized",
			rows: [][]string{
				{"", "コンテンツ1　画像パス", "/hoge/test1.jpg", "※note"},
			},
			want: []Section{
				{Img: "/hoge/test1.jpg", Template: "standard"},
			},
		},
		{
			name: "values are trimmed",
			rows: [][]string{
				{"", " テストタイトル ", "  spaced  "},
			},
			want: []Section{
				{Title: "spaced", Template: "standard"},
			},
		},
		{
			name: "short rows are tolerated",
			rows: [][]string{
				{"only"},
				{"", "テストタイトル"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.rows, DefaultRules())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassify_Templates - Template resolution at section open
// ---------------------------------------------------------------------------

func TestClassify_Templates(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.TemplatesByHeader = map[string]string{
		"ヒーロー": "hero",
		"空":    "",
	}
	rules.DefaultTemplate = "text-only"

	rows := [][]string{
		{"", "ヒーロー"},
		{"", "テストタイトル", "H"},
		{""},
		{"", "その他"},
		{"", "テストタイトル", "O"},
		{""},
		{"", "空"},
		{"", "テストタイトル", "E"},
		{""},
		{"", "テストタイトル", "A"},
	}

	want := []Section{
		{Header: "ヒーロー", Title: "H", Template: "hero"},
		{Header: "その他", Title: "O", Template: "text-only"},
		{Header: "空", Title: "E", Template: "text-only"},
		{Title: "A", Template: "text-only"},
	}

	got := Classify(rows, rules)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_EmptyDefaultTemplateFallsBack(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.DefaultTemplate = ""

	got := Classify([][]string{{"", "テストタイトル", "x"}}, rules)
	if len(got) != 1 || got[0].Template != "standard" {
		t.Errorf("Classify() = %+v, want one standard section", got)
	}
}

// ---------------------------------------------------------------------------
// TestClassify_CustomRules - Precedence with overlapping keys
// ---------------------------------------------------------------------------

func TestClassify_CustomRules(t *testing.T) {
	t.Parallel()

	rules := Rules{
		TitleKeys:       []string{"Title"},
		ImageKeys:       []string{"Image"},
		TextKeys:        []string{"Body", "Image"},
		DefaultTemplate: "standard",
	}

	rows := [][]string{
		{"", "Title", "t"},
		{"", "Image Body", "/x.png"},
		{"", "Body", "b"},
	}

	want := []Section{
		{Title: "t", Img: "/x.png", Text: "b", Template: "standard"},
	}

	got := Classify(rows, rules)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_EmptySubstringMatchesEverything(t *testing.T) {
	t.Parallel()

	rules := Rules{TextKeys: []string{""}, DefaultTemplate: "standard"}

	rows := [][]string{
		{"", "anything", "a"},
		{"", "lonely", ""},
	}

	want := []Section{{Text: "a\n", Template: "standard"}}

	got := Classify(rows, rules)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestIsHeader - Header precedence
// ---------------------------------------------------------------------------

func TestIsHeader(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		name string
		key  string
		val  string
		want bool
	}{
		{"unknown key without value", "セクション", "", true},
		{"unknown key with value", "セクション", "x", false},
		{"empty key", "", "", false},
		{"exact title key", "テストタイトル", "", false},
		{"title key prefix only", "テストタイトルテストタイトル", "", true},
		{"contains image key", "コンテンツ1 画像パス", "", false},
		{"contains text key", "本文2", "", false},
		{"contains second text key", "メインテキスト", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isHeader(tt.key, tt.val, rules); got != tt.want {
				t.Errorf("isHeader(%q, %q) = %v, want %v", tt.key, tt.val, got, tt.want)
			}
		})
	}
}
