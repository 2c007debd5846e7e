package domain

import (
	"context"
)

// ProfileData is the singleton profile document.
type ProfileData struct {
	Name         string `json:"name" mapstructure:"name"`
	Title        string `json:"title" mapstructure:"title"`
	Subtitle     string `json:"subtitle" mapstructure:"subtitle"`
	ProfilePhoto string `json:"profilePhoto" mapstructure:"profilePhoto"`
	Bio          string `json:"bio,omitempty" mapstructure:"bio"`
}

type Skill struct {
	ID          string `json:"id,omitempty" mapstructure:"-"`
	Icon        string `json:"icon,omitempty" mapstructure:"icon" validate:"omitempty,symbolic_icon"`
	Title       string `json:"title" mapstructure:"title" validate:"required,max=100"`
	Description string `json:"description" mapstructure:"description" validate:"max=500"`
	Order       *int   `json:"order,omitempty" mapstructure:"order"`
}

// Experience is one entry of the about page timeline. CompanyImage is stored
// under both "companyImage" and the legacy "companyimg" field.
type Experience struct {
	ID           string `json:"id,omitempty" mapstructure:"-"`
	Title        string `json:"title" mapstructure:"title" validate:"required,max=200,no_emoji"`
	Company      string `json:"company" mapstructure:"company" validate:"required,max=200"`
	Period       string `json:"period" mapstructure:"period" validate:"required,max=100"`
	Description  string `json:"description" mapstructure:"description" validate:"max=5000"`
	CompanyImage string `json:"companyImage,omitempty" mapstructure:"companyImage" validate:"omitempty,url"`
	Order        *int   `json:"order,omitempty" mapstructure:"order"`
}

type Project struct {
	ID          string   `json:"id,omitempty" mapstructure:"-"`
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Stack       []string `json:"stack" mapstructure:"stack"`
	Role        string   `json:"role" mapstructure:"role"`
	Image       string   `json:"image" mapstructure:"image"`
	PlayStore   string   `json:"playStore,omitempty" mapstructure:"playStore"`
	AppStore    string   `json:"appStore,omitempty" mapstructure:"appStore"`
	GitHub      string   `json:"github,omitempty" mapstructure:"github"`
}

// BlogPost.Date is always a YYYY-MM-DD string.
type BlogPost struct {
	ID        string   `json:"id" mapstructure:"-"`
	Title     string   `json:"title" mapstructure:"title"`
	Excerpt   string   `json:"excerpt" mapstructure:"excerpt"`
	Thumbnail string   `json:"thumbnail" mapstructure:"thumbnail"`
	Date      string   `json:"date" mapstructure:"-"`
	ReadTime  string   `json:"readTime" mapstructure:"readTime"`
	Tags      []string `json:"tags" mapstructure:"tags"`
	Content   string   `json:"content,omitempty" mapstructure:"content"`
	Published *bool    `json:"published,omitempty" mapstructure:"published"`
}

type SocialLink struct {
	Email    string `json:"email,omitempty" mapstructure:"email"`
	LinkedIn string `json:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub   string `json:"github,omitempty" mapstructure:"github"`
	Twitter  string `json:"twitter,omitempty" mapstructure:"twitter"`
	Website  string `json:"website,omitempty" mapstructure:"website"`
}

// HomeData is assembled from the profile singleton, the home singleton and
// the skills collection.
type HomeData struct {
	Profile        ProfileData `json:"profile"`
	Skills         []Skill     `json:"skills"`
	CTATitle       string      `json:"ctaTitle,omitempty"`
	CTADescription string      `json:"ctaDescription,omitempty"`
}

type AboutData struct {
	Introduction []string     `json:"introduction"`
	Experience   []Experience `json:"experience"`
	Skills       []string     `json:"skills"`
	SocialLinks  SocialLink   `json:"socialLinks"`
}

// PortfolioRepository maps backend documents onto portfolio records. No
// method returns an error: failures are logged and degrade to nil or empty.
type PortfolioRepository interface {
	FetchProfile(ctx context.Context) *ProfileData
	FetchHome(ctx context.Context) *HomeData
	FetchAbout(ctx context.Context) *AboutData
	FetchProjects(ctx context.Context) []Project
	FetchProject(ctx context.Context, id string) *Project
	FetchBlogPosts(ctx context.Context, publishedOnly bool) []BlogPost
	FetchBlogPost(ctx context.Context, id string) *BlogPost
	// CreateExperience returns the new document id, or ok=false on failure.
	CreateExperience(ctx context.Context, exp Experience) (id string, ok bool)
}

// PortfolioUsecase serves cached portfolio queries to the delivery layer.
type PortfolioUsecase interface {
	Profile(ctx context.Context) QueryResult[*ProfileData]
	Home(ctx context.Context) QueryResult[*HomeData]
	About(ctx context.Context) QueryResult[*AboutData]
	Projects(ctx context.Context) QueryResult[[]Project]
	Project(ctx context.Context, id string) QueryResult[*Project]
	BlogPosts(ctx context.Context, publishedOnly bool) QueryResult[[]BlogPost]
	BlogPost(ctx context.Context, id string) QueryResult[*BlogPost]
	CreateExperience(ctx context.Context, exp *Experience) (string, error)
}
