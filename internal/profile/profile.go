// Package profile holds the résumé shown in the section panels and given to
// the assistant as context.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-portfolio/internal/world"
)

//go:embed data/profile.yaml
var defaultProfile []byte

// Profile is a résumé.
type Profile struct {
	Name           string       `yaml:"name" json:"name"`
	Pronoun        string       `yaml:"pronoun" json:"pronoun,omitempty"`
	About          About        `yaml:"about" json:"about"`
	Education      []Education  `yaml:"education" json:"education"`
	Experience     []Experience `yaml:"experience" json:"experience"`
	Projects       []Project    `yaml:"projects" json:"projects"`
	Skills         []SkillGroup `yaml:"skills" json:"skills"`
	Certifications []string     `yaml:"certifications" json:"certifications,omitempty"`
	Contact        Contact      `yaml:"contact" json:"contact"`
}

type About struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Education struct {
	Degree   string `yaml:"degree" json:"degree"`
	School   string `yaml:"school" json:"school"`
	Location string `yaml:"location" json:"location"`
	Period   string `yaml:"period" json:"period"`
}

type Experience struct {
	Role       string   `yaml:"role" json:"role"`
	Company    string   `yaml:"company" json:"company"`
	Location   string   `yaml:"location" json:"location"`
	Period     string   `yaml:"period" json:"period"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Project struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type SkillGroup struct {
	Label string   `yaml:"label" json:"label"`
	Items []string `yaml:"items" json:"items"`
}

type Contact struct {
	Email    string `yaml:"email" json:"email,omitempty"`
	Phone    string `yaml:"phone" json:"phone,omitempty"`
	Location string `yaml:"location" json:"location,omitempty"`
	Website  string `yaml:"website" json:"website,omitempty"`
	LinkedIn string `yaml:"linkedin" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github" json:"github,omitempty"`
}

// Default returns the embedded sample profile.
func Default() Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("profile: embedded profile is invalid: %v", err))
	}
	return p
}

// Load reads a profile file, or returns the embedded one when path is empty.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, errors.New("name is required")
	}
	return p, nil
}

// possessive returns the pronoun used when talking about the owner.
func (p Profile) possessive() string {
	if p.Pronoun != "" {
		return p.Pronoun
	}
	return "their"
}

// FirstName returns the first word of the name.
func (p Profile) FirstName() string {
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		return fields[0]
	}
	return p.Name
}

// Section is the content panel revealed by a box.
type Section struct {
	ID    world.BoxID `json:"id"`
	Title string      `json:"title"`
	Body  string      `json:"body"` // markup, see package markup
}

// Section returns the panel for a box.
func (p Profile) Section(id world.BoxID) (Section, bool) {
	var b strings.Builder
	title := ""

	switch id {
	case world.BoxAbout:
		title = "About Me"
		fmt.Fprintf(&b, "**%s**\n%s\n", p.About.Title, p.About.Description)
	case world.BoxEducation:
		title = "Education"
		for i, e := range p.Education {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s**\n%s, %s\n*%s*\n", e.Degree, e.School, e.Location, e.Period)
		}
	case world.BoxExperience:
		title = "Work Experience"
		for i, e := range p.Experience {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s** at **%s**\n*%s · %s*\n", e.Role, e.Company, e.Location, e.Period)
			for _, h := range e.Highlights {
				fmt.Fprintf(&b, "• %s\n", h)
			}
		}
	case world.BoxProjects:
		title = "Projects"
		for i, pr := range p.Projects {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s**\n%s\n", pr.Name, pr.Description)
		}
	case world.BoxSkills:
		title = "Skills"
		for _, g := range p.Skills {
			fmt.Fprintf(&b, "**%s**: `%s`\n", g.Label, strings.Join(g.Items, "`, `"))
		}
		if len(p.Certifications) > 0 {
			b.WriteString("\n**Certifications**\n")
			for _, c := range p.Certifications {
				fmt.Fprintf(&b, "• %s\n", c)
			}
		}
	case world.BoxContact:
		title = "Contact"
		for _, line := range p.contactLines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
	default:
		return Section{}, false
	}

	return Section{ID: id, Title: title, Body: strings.TrimRight(b.String(), "\n")}, true
}

func (p Profile) contactLines() []string {
	c := p.Contact
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Email", c.Email)
	add("Phone", c.Phone)
	add("Location", c.Location)
	add("Website", c.Website)
	add("LinkedIn", c.LinkedIn)
	add("GitHub", c.GitHub)
	return lines
}
