package view

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/model"
)

// repoFS exposes the module's templates and views directories.
func repoFS() fs.FS {
	return os.DirFS("../..")
}

func loadRenderer(t *testing.T) *Renderer {
	t.Helper()
	reg, err := LoadRegistry(repoFS(), config.ViewsLocalDir)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	r, err := NewRenderer(reg, repoFS(), config.TemplatesLocalDir)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}
	return r
}

func TestParseFrontMatter(t *testing.T) {
	testCases := []struct {
		name          string
		markdown      string
		expectErr     bool
		expectNone    bool
		expectedTitle string
		expectedShell bool
		expectedDate  time.Time
		expectedBody  string
	}{
		{
			name:          "Title and shell",
			markdown:      "%%%\ntitle = \"My Page\"\nshell = true\n%%%\nBody",
			expectedTitle: "My Page",
			expectedShell: true,
			expectedBody:  "\nBody",
		},
		{
			name:          "Leading whitespace and date",
			markdown:      "\n\n%%%\ntitle = \"Points\"\ndate = 2020-08-24 00:00:00Z\n%%%\n",
			expectedTitle: "Points",
			expectedDate:  time.Date(2020, 8, 24, 0, 0, 0, 0, time.UTC),
			expectedBody:  "\n",
		},
		{
			name:         "No front matter",
			markdown:     "# Just content",
			expectNone:   true,
			expectedBody: "# Just content",
		},
		{
			name:      "Unterminated",
			markdown:  "%%%\ntitle = \"Open\"\n# Content",
			expectErr: true,
		},
		{
			name:      "Malformed TOML",
			markdown:  "%%%\ntitle = \"Incomplete\n%%%\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fm, body, err := parseFrontMatter([]byte(tc.markdown))

			switch {
			case tc.expectErr:
				if err == nil || errors.Is(err, errNoFrontMatter) {
					t.Fatalf("Expected a parse error, got %v", err)
				}
				return
			case tc.expectNone:
				if !errors.Is(err, errNoFrontMatter) {
					t.Fatalf("Expected errNoFrontMatter, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if fm.Title != tc.expectedTitle {
					t.Errorf("Expected title %q, got %q", tc.expectedTitle, fm.Title)
				}
				if fm.Shell != tc.expectedShell {
					t.Errorf("Expected shell=%v, got %v", tc.expectedShell, fm.Shell)
				}
				if !fm.Date.Equal(tc.expectedDate) {
					t.Errorf("Expected date %v, got %v", tc.expectedDate, fm.Date)
				}
				if fm.Language != "ko" {
					t.Errorf("Expected default language ko, got %q", fm.Language)
				}
			}

			if string(body) != tc.expectedBody {
				t.Errorf("Expected body %q, got %q", tc.expectedBody, body)
			}
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(repoFS(), config.ViewsLocalDir)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}

	for _, id := range All() {
		c, ok := reg.Get(id)
		if !ok {
			t.Errorf("Expected component %s to be loaded", id)
			continue
		}
		if c.Title == "" || c.Body == "" {
			t.Errorf("Expected %s to have a title and a body, got %+v", id, c)
		}
	}

	for id, shell := range map[ID]bool{Mypage: true, AdminFrame: true, OrderList: false, Main: false} {
		if c, _ := reg.Get(id); c.Shell != shell {
			t.Errorf("Expected %s shell=%v, got %v", id, shell, c.Shell)
		}
	}

	if got := reg.Title(Point); got != "Points" {
		t.Errorf("Expected Points title, got %q", got)
	}
	if got := reg.Title(ID("unknown")); got != "unknown" {
		t.Errorf("Expected unknown id to fall back to itself, got %q", got)
	}
}

func TestLoadRegistryMissingView(t *testing.T) {
	fsys := fstest.MapFS{
		"views/main.md": {Data: []byte("%%%\ntitle = \"Main\"\n%%%\n")},
	}

	_, err := LoadRegistry(fsys, "views")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist for missing views, got %v", err)
	}
}

func TestParseComponentWithoutFrontMatter(t *testing.T) {
	c, err := parseComponent(OrderList, []byte("Recent orders"))
	if err != nil {
		t.Fatalf("parseComponent returned error: %v", err)
	}
	if c.Title != "Order List" {
		t.Errorf("Expected derived title 'Order List', got %q", c.Title)
	}
	if !strings.Contains(string(c.Body), "Recent orders") {
		t.Errorf("Expected body to be rendered, got %q", c.Body)
	}
	if c.Language != "ko" {
		t.Errorf("Expected default language ko, got %q", c.Language)
	}
}

func TestParseComponentLanguage(t *testing.T) {
	c, err := parseComponent(AdminFrame, []byte("%%%\ntitle = \"Admin\"\nlanguage = \"en\"\nshell = true\n%%%\nSeller back-office."))
	if err != nil {
		t.Fatalf("parseComponent returned error: %v", err)
	}
	if c.Language != "en" {
		t.Errorf("Expected language en, got %q", c.Language)
	}
	if !c.Shell {
		t.Error("Expected a shell component")
	}
}

func TestFragmentNestsShells(t *testing.T) {
	r := loadRenderer(t)

	html, err := r.Fragment([]Frame{
		{ID: Mypage, Links: []Link{
			{Title: "Order List", Href: "/mypage/orderList"},
			{Title: "Points", Href: "/mypage/point", Active: true},
		}},
		{ID: Point},
	})
	if err != nil {
		t.Fatalf("Fragment returned error: %v", err)
	}
	out := string(html)

	outer := strings.Index(out, `data-view="mypage"`)
	slot := strings.Index(out, `class="slot"`)
	inner := strings.Index(out, `data-view="point"`)
	if outer == -1 || slot == -1 || inner == -1 {
		t.Fatalf("Expected both views and a slot, got %s", out)
	}
	if !(outer < slot && slot < inner) {
		t.Errorf("Expected point to be mounted inside the mypage slot, got %s", out)
	}
	if !strings.Contains(out, `data-view="point" data-tenant="storefront" data-depth="1" lang="ko"`) {
		t.Errorf("Expected the component language on the section, got %s", out)
	}
	if !strings.Contains(out, `<a href="/mypage/point" class="active">Points</a>`) {
		t.Errorf("Expected the active shell link, got %s", out)
	}
}

func TestFragmentSameComponentTwice(t *testing.T) {
	r := loadRenderer(t)

	html, err := r.Fragment([]Frame{{ID: Mypage}, {ID: Mypage}})
	if err != nil {
		t.Fatalf("Fragment returned error: %v", err)
	}
	if n := strings.Count(string(html), `data-view="mypage"`); n != 2 {
		t.Errorf("Expected mypage to be rendered twice, got %d", n)
	}
}

func TestFragmentUnknownView(t *testing.T) {
	r := loadRenderer(t)

	if _, err := r.Fragment([]Frame{{ID: ID("qna")}}); err == nil {
		t.Error("Expected error for an unknown view")
	}
}

func TestPage(t *testing.T) {
	r := loadRenderer(t)

	page := &model.PageData{SiteName: "Brandi", Mode: config.ModeHistory, HomeHref: "/"}
	var buf bytes.Buffer
	if err := r.Page(&buf, page, []Frame{{ID: AdminFrame}, {ID: OrderManagement}}); err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Order Management · Brandi</title>") {
		t.Errorf("Expected the leaf title in the document title, got %s", out)
	}
	if !strings.Contains(out, `<html lang="ko"`) {
		t.Errorf("Expected the document language from the outermost view, got %s", out)
	}
	if !strings.Contains(out, `class="tenant-admin"`) {
		t.Errorf("Expected the admin tenant body class, got %s", out)
	}
	if strings.Contains(out, "router.js") {
		t.Error("Expected no hash router script in history mode")
	}
}

func TestNotFound(t *testing.T) {
	r := loadRenderer(t)

	var fragment bytes.Buffer
	if err := r.NotFound(&fragment, nil, "/nope"); err != nil {
		t.Fatalf("NotFound returned error: %v", err)
	}
	if !strings.Contains(fragment.String(), "<code>/nope</code>") || strings.Contains(fragment.String(), "<html") {
		t.Errorf("Expected a bare not-found fragment, got %s", fragment.String())
	}

	var full bytes.Buffer
	page := &model.PageData{SiteName: "Brandi", Mode: config.ModeHash, HomeHref: "/#/"}
	if err := r.NotFound(&full, page, "/nope"); err != nil {
		t.Fatalf("NotFound returned error: %v", err)
	}
	if !strings.Contains(full.String(), "<html") || !strings.Contains(full.String(), `href="/#/"`) {
		t.Errorf("Expected a full not-found page, got %s", full.String())
	}
}

func TestTenant(t *testing.T) {
	for _, id := range All() {
		want := TenantStorefront
		if strings.HasPrefix(string(id), "admin") || strings.HasSuffix(string(id), "management") || id == ProductRegistration {
			want = TenantAdmin
		}
		if got := id.Tenant(); got != want {
			t.Errorf("Expected %s tenant %s, got %s", id, want, got)
		}
	}
}
