package repository

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/docmap"
	"portfolio-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// DefaultRoot is the top-level collection holding all portfolio documents.
const DefaultRoot = "portfolio"

type Option func(*portfolioRepo)

func WithRoot(root string) Option {
	return func(r *portfolioRepo) {
		if root != "" {
			r.root = root
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *portfolioRepo) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the clock used for blog posts stored without a date.
func WithClock(now func() time.Time) Option {
	return func(r *portfolioRepo) {
		if now != nil {
			r.now = now
		}
	}
}

type portfolioRepo struct {
	store  domain.DocumentStore
	root   string
	log    *slog.Logger
	now    func() time.Time
	mapper *docmap.Mapper
}

// NewPortfolioRepository creates the data access layer over a document store.
func NewPortfolioRepository(store domain.DocumentStore, opts ...Option) domain.PortfolioRepository {
	r := &portfolioRepo{
		store: store,
		root:  DefaultRoot,
		log:   logger.Log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	r.mapper = docmap.NewMapper(r.now)
	return r
}

func (r *portfolioRepo) path(segments ...string) string {
	return domain.JoinPath(append([]string{r.root}, segments...)...)
}

// getOptional reads a singleton. A missing document is not an error.
func (r *portfolioRepo) getOptional(ctx context.Context, path string) (*domain.Document, error) {
	doc, err := r.store.Get(ctx, path)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

func (r *portfolioRepo) ordered(ctx context.Context, collection string) ([]domain.Document, error) {
	return r.store.List(ctx, collection, domain.Query{}.Order("order", domain.Asc))
}

func (r *portfolioRepo) FetchProfile(ctx context.Context) *domain.ProfileData {
	doc, err := r.getOptional(ctx, r.path("profile"))
	if err != nil {
		r.log.Error("Error fetching profile data", "error", err)
		return nil
	}
	if doc == nil {
		return nil
	}
	profile, err := r.mapper.Profile(doc)
	if err != nil {
		r.log.Error("Malformed profile document", "path", doc.Path, "error", err)
		return nil
	}
	return &profile
}

// FetchHome reads the profile, the skills and the home CTA in parallel. Each
// part degrades on its own; the result is nil only if every read failed.
// An empty skills collection is returned as is.
func (r *portfolioRepo) FetchHome(ctx context.Context) *domain.HomeData {
	var (
		profileDoc, ctaDoc            *domain.Document
		skillDocs                     []domain.Document
		profileErr, skillsErr, ctaErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		profileDoc, profileErr = r.getOptional(ctx, r.path("profile"))
		return nil
	})
	g.Go(func() error {
		skillDocs, skillsErr = r.ordered(ctx, r.path("home", "skills"))
		return nil
	})
	g.Go(func() error {
		ctaDoc, ctaErr = r.getOptional(ctx, r.path("home"))
		return nil
	})
	_ = g.Wait()

	if profileErr != nil && skillsErr != nil && ctaErr != nil {
		r.log.Error("Error fetching home data", "error", errors.Join(profileErr, skillsErr, ctaErr))
		return nil
	}

	home := &domain.HomeData{Skills: []domain.Skill{}}
	if profileErr != nil {
		r.log.Warn("Home profile unavailable, using empty profile", "error", profileErr)
	} else if profile, err := r.mapper.Profile(profileDoc); err != nil {
		r.log.Error("Malformed profile document", "error", err)
	} else {
		home.Profile = profile
	}

	if skillsErr != nil {
		r.log.Warn("Home skills unavailable", "error", skillsErr)
	}
	for _, d := range skillDocs {
		skill, err := r.mapper.Skill(d)
		if err != nil {
			r.log.Warn("Skipping malformed skill", "path", d.Path, "error", err)
			continue
		}
		home.Skills = append(home.Skills, skill)
	}

	if ctaErr != nil {
		r.log.Warn("Home CTA unavailable", "error", ctaErr)
	} else if title, desc, err := r.mapper.HomeCTA(ctaDoc); err != nil {
		r.log.Error("Malformed home document", "error", err)
	} else {
		home.CTATitle, home.CTADescription = title, desc
	}
	return home
}

// FetchAbout reads the about singleton and the ordered experience in
// parallel. The result is nil only if both reads failed.
func (r *portfolioRepo) FetchAbout(ctx context.Context) *domain.AboutData {
	var (
		aboutDoc         *domain.Document
		expDocs          []domain.Document
		aboutErr, expErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		aboutDoc, aboutErr = r.getOptional(ctx, r.path("about"))
		return nil
	})
	g.Go(func() error {
		expDocs, expErr = r.ordered(ctx, r.path("about", "experience"))
		return nil
	})
	_ = g.Wait()

	if aboutErr != nil && expErr != nil {
		r.log.Error("Error fetching about data", "error", errors.Join(aboutErr, expErr))
		return nil
	}
	if aboutErr != nil {
		r.log.Warn("About document unavailable, using empty sections", "error", aboutErr)
		aboutDoc = nil
	}
	if expErr != nil {
		r.log.Warn("Experience unavailable", "error", expErr)
	}

	experience := make([]domain.Experience, 0, len(expDocs))
	for _, d := range expDocs {
		exp, err := r.mapper.Experience(d)
		if err != nil {
			r.log.Warn("Skipping malformed experience", "path", d.Path, "error", err)
			continue
		}
		experience = append(experience, exp)
	}

	about, err := r.mapper.About(aboutDoc, experience)
	if err != nil {
		r.log.Error("Malformed about document", "error", err)
		about, _ = r.mapper.About(nil, experience)
	}
	return &about
}

func (r *portfolioRepo) FetchProjects(ctx context.Context) []domain.Project {
	docs, err := r.ordered(ctx, r.path("projects", "items"))
	if err != nil {
		r.log.Error("Error fetching projects", "error", err)
		return []domain.Project{}
	}
	projects := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		p, err := r.mapper.Project(d)
		if err != nil {
			r.log.Warn("Skipping malformed project", "path", d.Path, "error", err)
			continue
		}
		projects = append(projects, p)
	}
	return projects
}

func (r *portfolioRepo) FetchProject(ctx context.Context, id string) *domain.Project {
	if id == "" {
		return nil
	}
	doc, err := r.getOptional(ctx, r.path("projects", "items", id))
	if err != nil {
		r.log.Error("Error fetching project", "id", id, "error", err)
		return nil
	}
	if doc == nil {
		return nil
	}
	p, err := r.mapper.Project(*doc)
	if err != nil {
		r.log.Error("Malformed project document", "id", id, "error", err)
		return nil
	}
	return &p
}

// FetchBlogPosts lists posts newest first. For published posts the filtered,
// ordered query needs a composite index; when the backend reports it missing
// the query is retried without ordering and sorted here. Any other failure
// yields an empty list.
func (r *portfolioRepo) FetchBlogPosts(ctx context.Context, publishedOnly bool) []domain.BlogPost {
	coll := r.path("blog", "posts")

	var (
		docs []domain.Document
		err  error
	)
	if publishedOnly {
		docs, err = r.store.List(ctx, coll, domain.Query{}.Where("published", true).Order("date", domain.Desc))
		if errors.Is(err, domain.ErrIndexRequired) {
			r.log.Warn("Compound blog query needs an index, falling back to filter-only query", "error", err)
			docs, err = r.store.List(ctx, coll, domain.Query{}.Where("published", true))
		}
	} else {
		docs, err = r.store.List(ctx, coll, domain.Query{}.Order("date", domain.Desc))
	}
	if err != nil {
		if errors.Is(err, domain.ErrIndexRequired) {
			r.log.Error("Blog query requires a composite index on (published, date desc)", "error", err)
		} else {
			r.log.Error("Error fetching blog posts", "error", err)
		}
		return []domain.BlogPost{}
	}

	posts := make([]domain.BlogPost, 0, len(docs))
	for _, d := range docs {
		post, err := r.mapper.BlogPost(d)
		if err != nil {
			r.log.Warn("Skipping malformed blog post", "path", d.Path, "error", err)
			continue
		}
		posts = append(posts, post)
	}
	SortPostsByDateDesc(posts)
	r.log.Debug("Fetched blog posts", "count", len(posts), "published_only", publishedOnly)
	return posts
}

func (r *portfolioRepo) FetchBlogPost(ctx context.Context, id string) *domain.BlogPost {
	if id == "" {
		return nil
	}
	doc, err := r.getOptional(ctx, r.path("blog", "posts", id))
	if err != nil {
		r.log.Error("Error fetching blog post", "id", id, "error", err)
		return nil
	}
	if doc == nil {
		return nil
	}
	post, err := r.mapper.BlogPost(*doc)
	if err != nil {
		r.log.Error("Malformed blog post document", "id", id, "error", err)
		return nil
	}
	return &post
}

// CreateExperience appends exp to the timeline. Without an explicit order the
// entry goes after the current last one; the timeline query skips documents
// that have no order field.
func (r *portfolioRepo) CreateExperience(ctx context.Context, exp domain.Experience) (string, bool) {
	coll := r.path("about", "experience")
	if exp.Order == nil {
		docs, err := r.ordered(ctx, coll)
		if err != nil {
			r.log.Warn("Could not read experience order", "error", err)
		}
		next := docmap.NextOrder(docs)
		exp.Order = &next
	}
	id, err := r.store.Add(ctx, coll, docmap.ExperienceFields(exp))
	if err != nil {
		r.log.Error("Error creating experience", "error", err)
		return "", false
	}
	r.log.Info("Experience created", "id", id)
	return id, true
}

// SortPostsByDateDesc orders posts newest first. Posts whose date cannot be
// parsed go last; ties keep their incoming order.
func SortPostsByDateDesc(posts []domain.BlogPost) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]keyed, len(posts))
	for _, p := range posts {
		t, ok := docmap.ParseDate(p.Date)
		keys[p.Date] = keyed{t, ok}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := keys[posts[i].Date], keys[posts[j].Date]
		if a.ok != b.ok {
			return a.ok
		}
		return a.t.After(b.t)
	})
}
