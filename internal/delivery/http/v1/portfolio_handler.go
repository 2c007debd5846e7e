package v1

import (
	"net/http"
	"strconv"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

// NewPortfolioHandler registers the public content routes. writeGuard runs
// in front of the write endpoint (rate limiting).
func NewPortfolioHandler(public *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, writeGuard ...gin.HandlerFunc) {
	handler := &PortfolioHandler{
		portfolioUC: portfolioUC,
	}

	public.GET("/profile", handler.GetProfile)
	public.GET("/home", handler.GetHome)
	public.GET("/about", handler.GetAbout)
	public.POST("/about/experience", append(writeGuard, handler.CreateExperience)...)
	public.GET("/projects", handler.GetProjects)
	public.GET("/projects/:id", handler.GetProject)
	public.GET("/blog/posts", handler.GetBlogPosts)
	public.GET("/blog/posts/:id", handler.GetBlogPost)
}

func meta[T any](q domain.QueryResult[T]) response.Meta {
	m := response.Meta{Loading: q.Loading, Error: q.Error, Found: q.Found}
	if !q.UpdatedAt.IsZero() {
		at := q.UpdatedAt.UTC()
		m.UpdatedAt = &at
	}
	return m
}

// boolQuery reads an optional boolean query parameter.
func boolQuery(c *gin.Context, name string, fallback bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.BadRequest("Query parameter " + name + " must be true or false")
	}
	return v, nil
}

// respondQuery answers 503 when the query could not run at all and 200
// otherwise; absence of a singleton is reported through meta.found.
func respondQuery[T any](c *gin.Context, message string, q domain.QueryResult[T], data interface{}, m response.Meta) {
	if q.Error {
		c.Error(apperror.ServiceUnavailable("Content is temporarily unavailable", nil))
		return
	}
	response.Query(c, http.StatusOK, message, data, m)
}

// GetProfile godoc
// @Summary      Get profile
// @Description  The site owner's profile. data is null when no profile exists.
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileData}
// @Failure      503  {object}  response.Response
// @Router       /profile [get]
func (h *PortfolioHandler) GetProfile(c *gin.Context) {
	q := h.portfolioUC.Profile(c.Request.Context())
	respondQuery(c, "Profile retrieved", q, q.Data, meta(q))
}

// GetHome godoc
// @Summary      Get home page content
// @Description  Profile, skills and call-to-action text. With placeholders=true, empty skills are replaced by the placeholder set.
// @Tags         portfolio
// @Produce      json
// @Param        placeholders  query     bool  false  "Substitute placeholder skills when none exist"
// @Success      200           {object}  response.Response{data=domain.HomeData}
// @Failure      400           {object}  response.Response
// @Failure      503           {object}  response.Response
// @Router       /home [get]
func (h *PortfolioHandler) GetHome(c *gin.Context) {
	usePlaceholders, err := boolQuery(c, "placeholders", false)
	if err != nil {
		c.Error(err)
		return
	}

	q := h.portfolioUC.Home(c.Request.Context())
	m := meta(q)
	data := q.Data
	if usePlaceholders && (data == nil || len(data.Skills) == 0) {
		// Copy so the cached record is left untouched.
		home := domain.HomeData{}
		if data != nil {
			home = *data
		}
		home.Skills = PlaceholderSkills()
		data = &home
		m.Placeholder = true
	}
	respondQuery(c, "Home content retrieved", q, data, m)
}

// GetAbout godoc
// @Summary      Get about page content
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AboutData}
// @Failure      503  {object}  response.Response
// @Router       /about [get]
func (h *PortfolioHandler) GetAbout(c *gin.Context) {
	q := h.portfolioUC.About(c.Request.Context())
	respondQuery(c, "About content retrieved", q, q.Data, meta(q))
}

// CreateExperience godoc
// @Summary      Add an experience entry
// @Description  Appends an entry to the about page timeline.
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        experience  body      domain.Experience  true  "Experience entry"
// @Success      201         {object}  response.Response{data=domain.Experience}
// @Failure      400         {object}  response.Response
// @Failure      429         {object}  response.Response
// @Failure      502         {object}  response.Response
// @Router       /about/experience [post]
func (h *PortfolioHandler) CreateExperience(c *gin.Context) {
	var req domain.Experience
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	req.ID = ""

	if _, err := h.portfolioUC.CreateExperience(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Experience created", req)
}

// GetProjects godoc
// @Summary      List projects
// @Tags         portfolio
// @Produce      json
// @Param        placeholders  query     bool  false  "Substitute sample projects when none exist"
// @Success      200           {object}  response.Response{data=[]domain.Project}
// @Failure      400           {object}  response.Response
// @Failure      503           {object}  response.Response
// @Router       /projects [get]
func (h *PortfolioHandler) GetProjects(c *gin.Context) {
	usePlaceholders, err := boolQuery(c, "placeholders", false)
	if err != nil {
		c.Error(err)
		return
	}

	q := h.portfolioUC.Projects(c.Request.Context())
	m := meta(q)
	var data interface{} = nonNilProjects(q.Data)
	if usePlaceholders && len(q.Data) == 0 {
		data = PlaceholderProjects()
		m.Placeholder = true
	}
	respondQuery(c, "Projects retrieved", q, data, m)
}

// GetProject godoc
// @Summary      Get a project
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=domain.Project}
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /projects/{id} [get]
func (h *PortfolioHandler) GetProject(c *gin.Context) {
	q := h.portfolioUC.Project(c.Request.Context(), c.Param("id"))
	if !q.Error && !q.Found {
		c.Error(apperror.NotFound("Project not found"))
		return
	}
	respondQuery(c, "Project retrieved", q, q.Data, meta(q))
}

// GetBlogPosts godoc
// @Summary      List blog posts
// @Description  Newest first. Only published posts unless published=false.
// @Tags         blog
// @Produce      json
// @Param        published  query     bool  false  "Only published posts (default true)"
// @Success      200        {object}  response.Response{data=[]domain.BlogPost}
// @Failure      400        {object}  response.Response
// @Failure      503        {object}  response.Response
// @Router       /blog/posts [get]
func (h *PortfolioHandler) GetBlogPosts(c *gin.Context) {
	publishedOnly, err := boolQuery(c, "published", true)
	if err != nil {
		c.Error(err)
		return
	}

	q := h.portfolioUC.BlogPosts(c.Request.Context(), publishedOnly)
	posts := q.Data
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	respondQuery(c, "Blog posts retrieved", q, posts, meta(q))
}

// GetBlogPost godoc
// @Summary      Get a blog post
// @Tags         blog
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Response{data=domain.BlogPost}
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /blog/posts/{id} [get]
func (h *PortfolioHandler) GetBlogPost(c *gin.Context) {
	q := h.portfolioUC.BlogPost(c.Request.Context(), c.Param("id"))
	if !q.Error && !q.Found {
		c.Error(apperror.NotFound("Blog post not found"))
		return
	}
	respondQuery(c, "Blog post retrieved", q, q.Data, meta(q))
}

func nonNilProjects(p []domain.Project) []domain.Project {
	if p == nil {
		return []domain.Project{}
	}
	return p
}
