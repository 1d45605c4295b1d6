// Package content reads the static documents the site is built from: the
// portfolio content document and the diagram manifest.
//
// Both are read once per page request and never cached, so edits to the
// files show up on the next load.
package content

// Content is the portfolio content document.
type Content struct {
	Hero      Hero        `json:"hero"`
	About     About       `json:"about"`
	Skills    []string    `json:"skills"`
	Projects  []Project   `json:"projects"`
	Education []Education `json:"education"`
	Contact   Contact     `json:"contact"`
}

type Hero struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

type About struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type Project struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Contact struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Phone    string `json:"phone"`
	Medium   string `json:"medium"`
	Location string `json:"location"`
}

// Manifest is the ordered list of diagram filenames.
type Manifest []string

// DiagramBase is the URL prefix diagram filenames are resolved against.
const DiagramBase = "/diagrams/"

// Paths resolves every filename against DiagramBase, keeping order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for _, name := range m {
		paths = append(paths, DiagramBase+name)
	}
	return paths
}
