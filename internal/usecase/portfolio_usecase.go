package usecase

import (
	"context"
	"strings"

	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Cache keys for the portfolio resources. Parameterized resources build
// their keys with the constructors below.
var (
	KeyProfile  = cache.NewKey("profile")
	KeyHome     = cache.NewKey("home")
	KeyAbout    = cache.NewKey("about")
	KeyProjects = cache.NewKey("projects")
)

func KeyProject(id string) cache.Key            { return cache.NewKey("project", id) }
func KeyBlogPosts(publishedOnly bool) cache.Key { return cache.NewKey("blogPosts", publishedOnly) }
func KeyBlogPost(id string) cache.Key           { return cache.NewKey("blogPost", id) }

type portfolioUsecase struct {
	repo     domain.PortfolioRepository
	cache    *cache.Cache
	validate *validator.Validate
}

// NewPortfolioUsecase wraps repo with the query cache c. A nil validate gets
// the default validator with the custom rules registered.
func NewPortfolioUsecase(repo domain.PortfolioRepository, c *cache.Cache, validate *validator.Validate) domain.PortfolioUsecase {
	if c == nil {
		c = cache.New()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &portfolioUsecase{repo: repo, cache: c, validate: validate}
}

// query runs fetch through the cache and reports the key's state alongside
// the value. The repository degrades instead of failing, so Error is only
// set when the caller's context is already done and nothing fresh is cached.
// Absent results are only retained when retainAbsent is set; item lookups
// pass false so unknown ids never accumulate.
func query[T any](ctx context.Context, c *cache.Cache, key cache.Key, fetch func(context.Context) T, found func(T) bool, retainAbsent bool) domain.QueryResult[T] {
	if ctx.Err() != nil {
		st := c.State(key)
		if data, ok := cache.Peek[T](c, key); ok {
			return domain.QueryResult[T]{Data: data, Found: found(data), Loading: st.Fetching, UpdatedAt: st.UpdatedAt}
		}
		return domain.QueryResult[T]{Loading: st.Fetching, Error: true, UpdatedAt: st.UpdatedAt}
	}
	var keep func(T) bool
	if !retainAbsent {
		keep = found
	}
	data, err := cache.FetchIf(ctx, c, key, func(ctx context.Context) (T, error) {
		return fetch(ctx), nil
	}, keep)
	st := c.State(key)
	return domain.QueryResult[T]{
		Data:      data,
		Found:     err == nil && found(data),
		Loading:   st.Fetching,
		Error:     err != nil,
		UpdatedAt: st.UpdatedAt,
	}
}

func notNil[T any](v *T) bool { return v != nil }

func always[T any](T) bool { return true }

func (u *portfolioUsecase) Profile(ctx context.Context) domain.QueryResult[*domain.ProfileData] {
	return query(ctx, u.cache, KeyProfile, u.repo.FetchProfile, notNil[domain.ProfileData], true)
}

func (u *portfolioUsecase) Home(ctx context.Context) domain.QueryResult[*domain.HomeData] {
	return query(ctx, u.cache, KeyHome, u.repo.FetchHome, notNil[domain.HomeData], true)
}

func (u *portfolioUsecase) About(ctx context.Context) domain.QueryResult[*domain.AboutData] {
	return query(ctx, u.cache, KeyAbout, u.repo.FetchAbout, notNil[domain.AboutData], true)
}

func (u *portfolioUsecase) Projects(ctx context.Context) domain.QueryResult[[]domain.Project] {
	return query(ctx, u.cache, KeyProjects, u.repo.FetchProjects, always[[]domain.Project], true)
}

func (u *portfolioUsecase) Project(ctx context.Context, id string) domain.QueryResult[*domain.Project] {
	return query(ctx, u.cache, KeyProject(id), func(ctx context.Context) *domain.Project {
		return u.repo.FetchProject(ctx, id)
	}, notNil[domain.Project], false)
}

func (u *portfolioUsecase) BlogPosts(ctx context.Context, publishedOnly bool) domain.QueryResult[[]domain.BlogPost] {
	return query(ctx, u.cache, KeyBlogPosts(publishedOnly), func(ctx context.Context) []domain.BlogPost {
		return u.repo.FetchBlogPosts(ctx, publishedOnly)
	}, always[[]domain.BlogPost], true)
}

func (u *portfolioUsecase) BlogPost(ctx context.Context, id string) domain.QueryResult[*domain.BlogPost] {
	return query(ctx, u.cache, KeyBlogPost(id), func(ctx context.Context) *domain.BlogPost {
		return u.repo.FetchBlogPost(ctx, id)
	}, notNil[domain.BlogPost], false)
}

// CreateExperience validates exp, stores it and drops the cached about page.
// On success exp.ID holds the new id.
func (u *portfolioUsecase) CreateExperience(ctx context.Context, exp *domain.Experience) (string, error) {
	if exp == nil {
		return "", apperror.BadRequest("Experience is required")
	}
	exp.Title = strings.TrimSpace(exp.Title)
	exp.Company = strings.TrimSpace(exp.Company)
	exp.Period = strings.TrimSpace(exp.Period)
	exp.Description = strings.TrimSpace(exp.Description)
	exp.CompanyImage = strings.TrimSpace(exp.CompanyImage)

	if err := u.validate.Struct(exp); err != nil {
		return "", apperror.Validation("Invalid experience", validation.FormatValidationErrors(err))
	}

	id, ok := u.repo.CreateExperience(ctx, *exp)
	if !ok {
		return "", apperror.BadGateway("Failed to save experience. Please try again later.", nil)
	}
	exp.ID = id
	u.cache.Invalidate(KeyAbout)
	return id, nil
}
