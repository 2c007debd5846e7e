// Package seed loads portfolio content from a YAML file into a document store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/docmap"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Content is the seed file layout. Every section is optional.
type Content struct {
	Profile    *domain.ProfileData `yaml:"profile"`
	Home       *HomeCTA            `yaml:"home"`
	Skills     []SkillEntry        `yaml:"skills"`
	About      *AboutPage          `yaml:"about"`
	Experience []ExperienceEntry   `yaml:"experience"`
	Projects   []ProjectEntry      `yaml:"projects"`
	Posts      []PostEntry         `yaml:"posts"`
}

type HomeCTA struct {
	CTATitle       string `yaml:"ctaTitle"`
	CTADescription string `yaml:"ctaDescription"`
}

type AboutPage struct {
	Introduction []string          `yaml:"introduction"`
	Skills       []string          `yaml:"skills"`
	SocialLinks  domain.SocialLink `yaml:"socialLinks"`
}

type SkillEntry struct {
	ID          string `yaml:"id"`
	Icon        string `yaml:"icon" validate:"omitempty,symbolic_icon"`
	Title       string `yaml:"title" validate:"required,max=100"`
	Description string `yaml:"description" validate:"max=500"`
	Order       *int   `yaml:"order"`
}

type ExperienceEntry struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title" validate:"required,max=200,no_emoji"`
	Company      string `yaml:"company" validate:"required,max=200"`
	Period       string `yaml:"period" validate:"required,max=100"`
	Description  string `yaml:"description" validate:"max=5000"`
	CompanyImage string `yaml:"companyImage" validate:"omitempty,url"`
	Order        *int   `yaml:"order"`
}

type ProjectEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Stack       []string `yaml:"stack"`
	Role        string   `yaml:"role"`
	Image       string   `yaml:"image"`
	PlayStore   string   `yaml:"playStore"`
	AppStore    string   `yaml:"appStore"`
	GitHub      string   `yaml:"github"`
	Order       *int     `yaml:"order"`
}

type PostEntry struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title" validate:"required"`
	Excerpt   string   `yaml:"excerpt"`
	Thumbnail string   `yaml:"thumbnail"`
	Date      string   `yaml:"date" validate:"required"`
	ReadTime  string   `yaml:"readTime"`
	Tags      []string `yaml:"tags"`
	Content   string   `yaml:"content"`
	Published bool     `yaml:"published"`
}

// Load decodes a seed file. Unknown keys are rejected so typos surface early.
func Load(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &c, nil
}

// Validate checks every entry and reports all problems at once.
func (c *Content) Validate(v *validator.Validate) error {
	if v == nil {
		v = validation.New()
	}
	var errs []error
	check := func(section string, i int, entry interface{}) {
		if err := v.Struct(entry); err != nil {
			for field, msg := range validation.FormatValidationErrors(err) {
				errs = append(errs, fmt.Errorf("%s[%d].%s: %s", section, i, field, msg))
			}
		}
	}
	for i := range c.Skills {
		check("skills", i, c.Skills[i])
	}
	for i := range c.Experience {
		check("experience", i, c.Experience[i])
	}
	for i := range c.Projects {
		check("projects", i, c.Projects[i])
	}
	for i, p := range c.Posts {
		check("posts", i, p)
		if _, ok := docmap.ParseDate(p.Date); p.Date != "" && !ok {
			errs = append(errs, fmt.Errorf("posts[%d].date: %q is not a date", i, p.Date))
		}
	}
	return errors.Join(errs...)
}

// Write is one document to store.
type Write struct {
	Path string
	Data map[string]interface{}
}

// Plan turns the content into the documents it seeds, rooted at root.
// Entries without an id get a slug of their title; entries without an
// order keep their position in the file.
func (c *Content) Plan(root string) []Write {
	path := func(segments ...string) string {
		return domain.JoinPath(append([]string{root}, segments...)...)
	}
	var writes []Write

	if c.Profile != nil {
		writes = append(writes, Write{path("profile"), map[string]interface{}{
			"name":         c.Profile.Name,
			"title":        c.Profile.Title,
			"subtitle":     c.Profile.Subtitle,
			"profilePhoto": c.Profile.ProfilePhoto,
			"bio":          c.Profile.Bio,
		}})
	}
	if c.Home != nil {
		writes = append(writes, Write{path("home"), map[string]interface{}{
			"ctaTitle":       c.Home.CTATitle,
			"ctaDescription": c.Home.CTADescription,
		}})
	}
	for i, s := range c.Skills {
		writes = append(writes, Write{path("home", "skills", idOr(s.ID, s.Title, i)), map[string]interface{}{
			"icon":        s.Icon,
			"title":       s.Title,
			"description": s.Description,
			"order":       orderOr(s.Order, i),
		}})
	}
	if c.About != nil {
		writes = append(writes, Write{path("about"), map[string]interface{}{
			"introduction": stringsToAny(c.About.Introduction),
			"skills":       stringsToAny(c.About.Skills),
			"socialLinks": map[string]interface{}{
				"email":    c.About.SocialLinks.Email,
				"linkedin": c.About.SocialLinks.LinkedIn,
				"github":   c.About.SocialLinks.GitHub,
				"twitter":  c.About.SocialLinks.Twitter,
				"website":  c.About.SocialLinks.Website,
			},
		}})
	}
	for i, e := range c.Experience {
		order := orderOr(e.Order, i)
		writes = append(writes, Write{path("about", "experience", idOr(e.ID, e.Company+" "+e.Title, i)), docmap.ExperienceFields(domain.Experience{
			Title:        e.Title,
			Company:      e.Company,
			Period:       e.Period,
			Description:  e.Description,
			CompanyImage: e.CompanyImage,
			Order:        &order,
		})})
	}
	for i, p := range c.Projects {
		writes = append(writes, Write{path("projects", "items", idOr(p.ID, p.Name, i)), map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"stack":       stringsToAny(p.Stack),
			"role":        p.Role,
			"image":       p.Image,
			"playStore":   p.PlayStore,
			"appStore":    p.AppStore,
			"github":      p.GitHub,
			"order":       orderOr(p.Order, i),
		}})
	}
	for i, p := range c.Posts {
		var date interface{} = p.Date
		if t, ok := docmap.ParseDate(p.Date); ok {
			date = t
		}
		writes = append(writes, Write{path("blog", "posts", idOr(p.ID, p.Title, i)), map[string]interface{}{
			"title":     p.Title,
			"excerpt":   p.Excerpt,
			"thumbnail": p.Thumbnail,
			"date":      date,
			"readTime":  p.ReadTime,
			"tags":      stringsToAny(p.Tags),
			"content":   p.Content,
			"published": p.Published,
		}})
	}
	return writes
}

// Apply writes the plan to store, stopping at the first failure.
func Apply(ctx context.Context, store domain.WritableStore, writes []Write) (int, error) {
	for i, w := range writes {
		if err := store.Set(ctx, w.Path, w.Data); err != nil {
			return i, fmt.Errorf("write %s: %w", w.Path, err)
		}
	}
	return len(writes), nil
}

func orderOr(order *int, fallback int) int {
	if order != nil {
		return *order
	}
	return fallback
}

func idOr(id, title string, index int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	if s := Slug(title); s != "" {
		return s
	}
	return fmt.Sprintf("item-%d", index+1)
}

// Slug lowercases s and joins its letter and digit runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func stringsToAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
