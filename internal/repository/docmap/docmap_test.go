package docmap_test

import (
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/docmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC) }

func TestTimestampToDateString(t *testing.T) {
	native := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"native timestamp", native, "2024-01-15"},
		{"pointer timestamp", &native, "2024-01-15"},
		{"date string unchanged", "2024-01-15", "2024-01-15"},
		{"free-form string unchanged", "Spring 2023", "Spring 2023"},
		{"rfc3339 string truncated", "2024-01-15T23:10:00Z", "2024-01-15"},
		{"date time string reformatted", "2024-01-15 10:30:00", "2024-01-15"},
		{"long month name reformatted", "January 15, 2024", "2024-01-15"},
		{"short month name reformatted", "Jan 15, 2024", "2024-01-15"},
		{"unix seconds int64", int64(1705276800), "2024-01-15"},
		{"unix seconds from json", float64(1705276800), "2024-01-15"},
		{"exported timestamp", map[string]interface{}{"seconds": float64(native.Unix()), "nanoseconds": float64(0)}, "2024-01-15"},
		{"admin export timestamp", map[string]interface{}{"_seconds": float64(native.Unix())}, "2024-01-15"},
		{"offset is converted to utc", time.Date(2024, 1, 15, 1, 0, 0, 0, time.FixedZone("CET", 3600)), "2024-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docmap.TimestampToDateString(tt.in))
		})
	}
}

func TestTimestampToDateStringMissingUsesToday(t *testing.T) {
	got := docmap.TimestampToDateString(nil)
	_, err := time.Parse(docmap.DateLayout, got)
	assert.NoError(t, err)
}

func TestExperienceLegacyImageAlias(t *testing.T) {
	m := docmap.NewMapper(fixedNow)

	t.Run("falls back to companyimg", func(t *testing.T) {
		exp, err := m.Experience(domain.Document{ID: "e1", Data: map[string]interface{}{
			"title":      "Mobile Lead",
			"company":    "Acme",
			"companyimg": "x.png",
		}})
		require.NoError(t, err)
		assert.Equal(t, "e1", exp.ID)
		assert.Equal(t, "x.png", exp.CompanyImage)
	})

	t.Run("canonical field wins", func(t *testing.T) {
		exp, err := m.Experience(domain.Document{ID: "e2", Data: map[string]interface{}{
			"companyImage": "new.png",
			"companyimg":   "old.png",
		}})
		require.NoError(t, err)
		assert.Equal(t, "new.png", exp.CompanyImage)
	})
}

func TestExperienceFieldsWritesBothNames(t *testing.T) {
	order := 3
	fields := docmap.ExperienceFields(domain.Experience{
		Title:        "Engineer",
		Company:      "Acme",
		Period:       "2020 - 2022",
		CompanyImage: "https://cdn.example.com/acme.png",
		Order:        &order,
	})
	assert.Equal(t, "https://cdn.example.com/acme.png", fields["companyImage"])
	assert.Equal(t, "https://cdn.example.com/acme.png", fields["companyimg"])
	assert.Equal(t, 3, fields["order"])
	assert.NotContains(t, fields, "id")
}

func TestBlogPostMapping(t *testing.T) {
	m := docmap.NewMapper(fixedNow)
	post, err := m.BlogPost(domain.Document{ID: "p1", Data: map[string]interface{}{
		"title":     "Shipping Flutter apps",
		"date":      time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		"tags":      []interface{}{"flutter", "ci", "flutter", " "},
		"published": true,
		"readTime":  "5 min read",
	}})
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "2024-01-15", post.Date)
	assert.Equal(t, []string{"flutter", "ci"}, post.Tags)
	require.NotNil(t, post.Published)
	assert.True(t, *post.Published)

	bare, err := m.BlogPost(domain.Document{ID: "p2", Data: map[string]interface{}{}})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", bare.Date)
	assert.Equal(t, []string{}, bare.Tags)
	assert.Nil(t, bare.Published)
}

func TestBlogPostDateIsAlwaysCanonical(t *testing.T) {
	m := docmap.NewMapper(fixedNow)
	for _, raw := range []interface{}{"2024-01-15 10:30:00", "January 15, 2024", "Jan 15, 2024", int64(1705276800)} {
		post, err := m.BlogPost(domain.Document{ID: "p", Data: map[string]interface{}{"date": raw}})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", post.Date, "date %v", raw)
	}
}

func TestProjectMappingDefaults(t *testing.T) {
	m := docmap.NewMapper(fixedNow)
	p, err := m.Project(domain.Document{ID: "app", Data: map[string]interface{}{
		"name":  "Habit Tracker",
		"stack": []interface{}{"Flutter", "Firebase"},
		"order": float64(1),
	}})
	require.NoError(t, err)
	assert.Equal(t, "app", p.ID)
	assert.Equal(t, []string{"Flutter", "Firebase"}, p.Stack)

	empty, err := m.Project(domain.Document{ID: "x", Data: map[string]interface{}{}})
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.Stack)
}

func TestAboutDefaultsWhenSingletonMissing(t *testing.T) {
	m := docmap.NewMapper(fixedNow)
	about, err := m.About(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, about.Introduction)
	assert.Equal(t, []string{}, about.Skills)
	assert.Equal(t, []domain.Experience{}, about.Experience)
	assert.Equal(t, domain.SocialLink{}, about.SocialLinks)
}

func TestAboutSingletonDecoding(t *testing.T) {
	m := docmap.NewMapper(fixedNow)
	about, err := m.About(&domain.Document{ID: "about", Data: map[string]interface{}{
		"introduction": []interface{}{"Hi", "I build apps"},
		"skills":       []interface{}{"Dart", "Go"},
		"socialLinks":  map[string]interface{}{"github": "https://github.com/me", "email": "me@example.com"},
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi", "I build apps"}, about.Introduction)
	assert.Equal(t, "https://github.com/me", about.SocialLinks.GitHub)
	assert.Equal(t, "me@example.com", about.SocialLinks.Email)
}

func TestParseDate(t *testing.T) {
	d, ok := docmap.ParseDate("2024-02-01")
	require.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	_, ok = docmap.ParseDate("someday")
	assert.False(t, ok)
}
