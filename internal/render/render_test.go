package render

import (
	"strings"
	"testing"

	"github.com/starford/wikisync/internal/models"
)

func defaultOpts() Options {
	return Options{LinkBase: DefaultLinkBase, DefaultCategory: models.DefaultCategory, PreviewLevel: 3}
}

func TestLink(t *testing.T) {
	cases := []struct {
		base, page, text, want string
	}{
		{"../../wiki", "My-Trick.md", "My Trick", "[My Trick](../../wiki/My-Trick)"},
		{"../../wiki/", "Page", "Page", "[Page](../../wiki/Page)"},
	}
	for _, c := range cases {
		if got := Link(c.base, c.page, c.text); got != c.want {
			t.Errorf("Link(%q, %q, %q) = %q, want %q", c.base, c.page, c.text, got, c.want)
		}
	}
}

func TestIndex_GroupsByCategory(t *testing.T) {
	categories := []string{models.DefaultCategory, "Utility", "Clocks", "Utility"}
	snippets := []models.Snippet{
		{File: "A.md", Title: "A", Category: "Utility"},
		{File: "B.md", Title: "B", Category: models.DefaultCategory},
		{File: "C.md", Title: "C", Category: "Utility"},
	}
	got := Index(categories, snippets, defaultOpts())
	want := "* Uncategorized\n" +
		"  * [B](../../wiki/B)\n" +
		"* Utility\n" +
		"  * [A](../../wiki/A)\n" +
		"  * [C](../../wiki/C)\n"
	if got != want {
		t.Errorf("Index =\n%s\nwant\n%s", got, want)
	}
}

func TestIndex_EmptyCategoryOmitted(t *testing.T) {
	got := Index([]string{models.DefaultCategory, "Clocks"}, []models.Snippet{
		{File: "A.md", Title: "A", Category: models.DefaultCategory},
	}, defaultOpts())
	if strings.Contains(got, "Clocks") {
		t.Errorf("empty category rendered:\n%s", got)
	}
}

func TestIndex_UndeclaredCategoryFallsBack(t *testing.T) {
	got := Index([]string{models.DefaultCategory, "Utility"}, []models.Snippet{
		{File: "X.md", Title: "X", Category: "Foo"},
	}, defaultOpts())
	want := "* Uncategorized\n  * [X](../../wiki/X)\n"
	if got != want {
		t.Errorf("Index = %q, want %q", got, want)
	}
}

func TestIndex_NoSnippets(t *testing.T) {
	if got := Index([]string{models.DefaultCategory}, nil, defaultOpts()); got != "" {
		t.Errorf("Index = %q, want empty", got)
	}
}

func TestIndex_Previews(t *testing.T) {
	opts := defaultOpts()
	opts.Previews = true
	got := Index([]string{models.DefaultCategory}, []models.Snippet{
		{File: "A.md", Title: "A", Category: models.DefaultCategory, Preview: "# A\nLead\n## Detail", HasPreview: true},
		{File: "B.md", Title: "B", Category: models.DefaultCategory},
	}, opts)
	want := "* Uncategorized\n" +
		"  * [A](../../wiki/A)\n" +
		"\n" +
		"    Lead\n" +
		"    ##### Detail\n" +
		"\n" +
		"  * [B](../../wiki/B)\n"
	if got != want {
		t.Errorf("Index =\n%q\nwant\n%q", got, want)
	}
}

func TestDocument(t *testing.T) {
	if got := Document("# Head", "* X\n"); got != "# Head\n* X\n" {
		t.Errorf("Document = %q", got)
	}
}

func TestWikiLinks(t *testing.T) {
	doc := Document("# Title\n\nSee [Contributing](../../wiki/Contributing) and [the wiki](../../wiki/).\n",
		Index([]string{models.DefaultCategory}, []models.Snippet{
			{File: "My-Trick.md", Title: "My Trick", Category: models.DefaultCategory},
		}, defaultOpts()))
	doc += "\n[elsewhere](https://example.com/wiki/Page)\n"

	got := WikiLinks([]byte(doc), DefaultLinkBase)
	want := []string{"Contributing", "My-Trick"}
	if len(got) != len(want) {
		t.Fatalf("WikiLinks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WikiLinks[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
