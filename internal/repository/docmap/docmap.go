// Package docmap turns raw backend documents into portfolio records and back.
// Missing fields decode to their zero value and collections are never nil.
package docmap

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/go-viper/mapstructure/v2"
)

// Legacy and canonical names of the experience image field.
const (
	FieldCompanyImage       = "companyImage"
	FieldCompanyImageLegacy = "companyimg"
)

type Mapper struct {
	now func() time.Time
}

func NewMapper(now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{now: now}
}

// timeToString lets timestamp values land in string fields.
func timeToString(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch t := data.(type) {
	case time.Time:
		return t.UTC().Format(DateLayout), nil
	case *time.Time:
		if t == nil {
			return "", nil
		}
		return t.UTC().Format(DateLayout), nil
	}
	return data, nil
}

func decode(data map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(timeToString),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func (m *Mapper) Profile(doc *domain.Document) (domain.ProfileData, error) {
	var p domain.ProfileData
	if doc == nil {
		return p, nil
	}
	err := decode(doc.Data, &p)
	return p, err
}

func (m *Mapper) Skill(doc domain.Document) (domain.Skill, error) {
	var s domain.Skill
	if err := decode(doc.Data, &s); err != nil {
		return s, err
	}
	s.ID = doc.ID
	return s, nil
}

// Experience reads companyImage, falling back to the legacy companyimg field.
func (m *Mapper) Experience(doc domain.Document) (domain.Experience, error) {
	var e domain.Experience
	if err := decode(doc.Data, &e); err != nil {
		return e, err
	}
	e.ID = doc.ID
	if e.CompanyImage == "" {
		if legacy, ok := doc.Data[FieldCompanyImageLegacy].(string); ok {
			e.CompanyImage = legacy
		}
	}
	return e, nil
}

func (m *Mapper) Project(doc domain.Document) (domain.Project, error) {
	var p domain.Project
	if err := decode(doc.Data, &p); err != nil {
		return p, err
	}
	p.ID = doc.ID
	if p.Stack == nil {
		p.Stack = []string{}
	}
	return p, nil
}

func (m *Mapper) BlogPost(doc domain.Document) (domain.BlogPost, error) {
	var b domain.BlogPost
	if err := decode(doc.Data, &b); err != nil {
		return b, err
	}
	b.ID = doc.ID
	b.Date = toDateString(doc.Data["date"], m.now)
	b.Tags = uniqueStrings(b.Tags)
	return b, nil
}

type homeDoc struct {
	CTATitle       string `mapstructure:"ctaTitle"`
	CTADescription string `mapstructure:"ctaDescription"`
}

// HomeCTA reads the call-to-action text from the home singleton.
func (m *Mapper) HomeCTA(doc *domain.Document) (title, description string, err error) {
	if doc == nil {
		return "", "", nil
	}
	var h homeDoc
	if err := decode(doc.Data, &h); err != nil {
		return "", "", err
	}
	return h.CTATitle, h.CTADescription, nil
}

type aboutDoc struct {
	Introduction []string          `mapstructure:"introduction"`
	Skills       []string          `mapstructure:"skills"`
	SocialLinks  domain.SocialLink `mapstructure:"socialLinks"`
}

// About builds the about record from its singleton and the already mapped
// experience entries. A nil singleton yields empty sections.
func (m *Mapper) About(doc *domain.Document, experience []domain.Experience) (domain.AboutData, error) {
	var a aboutDoc
	var err error
	if doc != nil {
		err = decode(doc.Data, &a)
	}
	if experience == nil {
		experience = []domain.Experience{}
	}
	out := domain.AboutData{
		Introduction: nonNil(a.Introduction),
		Experience:   experience,
		Skills:       nonNil(a.Skills),
		SocialLinks:  a.SocialLinks,
	}
	return out, err
}

// ExperienceFields is the document written for a new experience entry. The
// image goes under both the canonical and the legacy field names.
func ExperienceFields(e domain.Experience) map[string]interface{} {
	fields := map[string]interface{}{
		"title":                 e.Title,
		"company":               e.Company,
		"period":                e.Period,
		"description":           e.Description,
		FieldCompanyImage:       e.CompanyImage,
		FieldCompanyImageLegacy: e.CompanyImage,
	}
	if e.Order != nil {
		fields["order"] = *e.Order
	}
	return fields
}

// NextOrder returns one past the highest numeric "order" among docs, or 0.
func NextOrder(docs []domain.Document) int {
	next := 0
	for _, d := range docs {
		if n, ok := number(d.Data["order"]); ok && int(n)+1 > next {
			next = int(n) + 1
		}
	}
	return next
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// uniqueStrings drops blanks and repeats, keeping first occurrence order.
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
