package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = `{
  "hero": {"name": "Ada", "title": "Engineer", "subtitle": "Builds things", "description": "Hello"},
  "about": {"heading": "About me", "content": "I like compilers."},
  "skills": ["Go", "Terraform"],
  "projects": [{"name": "Lovelace", "position": "Lead", "description": "An engine", "link": "https://example.com"}],
  "education": [{"degree": "BSc", "institution": "Uni", "year": "2020"}],
  "contact": {"email": "ada@example.com", "github": "https://github.com/ada", "linkedin": "https://linkedin.com/in/ada",
              "phone": "123", "medium": "https://medium.com/@ada", "location": "London"}
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestStore_LoadFromFile(t *testing.T) {
	store := NewStore(writeFile(t, "content.json", sampleContent), "", nil)

	c, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ada", c.Hero.Name)
	assert.Equal(t, []string{"Go", "Terraform"}, c.Skills)
	assert.Equal(t, "Lead", c.Projects[0].Position)
	assert.Equal(t, "2020", c.Education[0].Year)
	assert.Equal(t, "https://github.com/ada", c.Contact.GitHub)
	assert.Equal(t, "London", c.Contact.Location)
}

func TestStore_LoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/content.json":
			w.Write([]byte(sampleContent))
		case "/diagrams/diagrams.json":
			w.Write([]byte(`["a.png","b.png"]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := NewStore(srv.URL+"/content.json", srv.URL+"/diagrams/diagrams.json", srv.Client())

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "About me", c.About.Heading)

	m, err := store.LoadManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/diagrams/a.png", "/diagrams/b.png"}, m.Paths())
}

func TestStore_Failures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.json")},
		{"bad json", writeFile(t, "bad.json", "{not json")},
		{"http 404", srv.URL + "/content.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.source, tt.source, srv.Client()).Load(context.Background())
			require.Error(t, err)
			assert.True(t, IsFetchError(err))
		})
	}
}

func TestManifest_PathsKeepsOrder(t *testing.T) {
	m := Manifest{"c.svg", "a.png", "b.jpg"}
	assert.Equal(t, []string{"/diagrams/c.svg", "/diagrams/a.png", "/diagrams/b.jpg"}, m.Paths())
	assert.Empty(t, Manifest{}.Paths())
}

func TestResumeFrom(t *testing.T) {
	r := ResumeFrom(nil)
	assert.False(t, r.Loaded)
	assert.Equal(t, FallbackName, r.Hero.Name)
	assert.Equal(t, FallbackContact.Email, r.Contact.Email)
	assert.NotContains(t, r.Hero.Description, "\t")
	assert.NotContains(t, r.Hero.Description, "\n")

	c := &Content{Hero: Hero{Name: "Ada"}, Contact: Contact{Phone: "123"}}
	r = ResumeFrom(c)
	assert.True(t, r.Loaded)
	assert.Equal(t, "Ada", r.Hero.Name)
	assert.Equal(t, FallbackTitle, r.Hero.Title)
	assert.Equal(t, "123", r.Contact.Phone)
	assert.Equal(t, FallbackContact.GitHub, r.Contact.GitHub)
}
