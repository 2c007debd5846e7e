package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Placeholder content the frontend shows while the store has nothing to
// offer. It is never written to the store or mixed into cached query results.

func PlaceholderSkills() []domain.Skill {
	return []domain.Skill{
		{Icon: "smartphone", Title: "Flutter Cross-Platform", Description: "Building beautiful, native-quality apps for iOS and Android from a single codebase."},
		{Icon: "database", Title: "Firebase Integration", Description: "Real-time databases, authentication, cloud storage, and serverless functions."},
		{Icon: "cloud", Title: "GraphQL APIs", Description: "Efficient data fetching and state management with modern API architecture."},
		{Icon: "code", Title: "App Store Deployment", Description: "Complete CI/CD pipeline setup and successful launches on both app stores."},
	}
}

func PlaceholderProjects() []domain.Project {
	return []domain.Project{
		{
			Name:        "PropTelli (Casakey)",
			Description: "Real estate management platform with property listings, virtual tours, and transaction management.",
			Stack:       []string{"Flutter", "Firebase", "GetX", "Google Maps API"},
			Role:        "Lead Flutter Developer",
			Image:       "https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=800&q=80",
			PlayStore:   "#",
			AppStore:    "#",
		},
		{
			Name:        "Choosenfly",
			Description: "Travel booking application with flight search, hotel reservations, and itinerary planning.",
			Stack:       []string{"Flutter", "GraphQL", "Provider", "Stripe"},
			Role:        "Full Stack Flutter Developer",
			Image:       "https://images.unsplash.com/photo-1436491865332-7a61a109cc05?w=800&q=80",
			PlayStore:   "#",
			AppStore:    "#",
		},
		{
			Name:        "Malankara Church App",
			Description: "Community management app with event scheduling, prayer requests, and live streaming.",
			Stack:       []string{"Flutter", "Firebase", "Cloud Functions", "FCM"},
			Role:        "Solo Developer",
			Image:       "https://images.unsplash.com/photo-1438032005730-c779502df39b?w=800&q=80",
			PlayStore:   "#",
		},
		{
			Name:        "NFC Flutter Project",
			Description: "NFC-enabled mobile solution for contactless payments and access control systems.",
			Stack:       []string{"Flutter", "NFC", "Dart", "Custom UI"},
			Role:        "Mobile Developer",
			Image:       "https://images.unsplash.com/photo-1563986768609-322da13575f3?w=800&q=80",
			GitHub:      "#",
		},
		{
			Name:        "Land Bank Super App",
			Description: "Comprehensive real estate platform with separate interfaces for agents, investors, and admins.",
			Stack:       []string{"Flutter", "Firebase", "REST API", "Multi-tenant"},
			Role:        "Senior Flutter Developer",
			Image:       "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800&q=80",
			PlayStore:   "#",
		},
	}
}

type PlaceholderHandler struct{}

func NewPlaceholderHandler(public *gin.RouterGroup) {
	handler := &PlaceholderHandler{}

	placeholders := public.Group("/placeholders")
	placeholders.GET("/skills", handler.Skills)
	placeholders.GET("/projects", handler.Projects)
}

// Skills godoc
// @Summary      Placeholder skills
// @Description  The four fallback skills shown when the skills collection is empty.
// @Tags         placeholders
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Skill}
// @Router       /placeholders/skills [get]
func (h *PlaceholderHandler) Skills(c *gin.Context) {
	response.Query(c, http.StatusOK, "Placeholder skills", PlaceholderSkills(), response.Meta{Found: true, Placeholder: true})
}

// Projects godoc
// @Summary      Placeholder projects
// @Description  Sample projects shown when the projects collection is empty.
// @Tags         placeholders
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Project}
// @Router       /placeholders/projects [get]
func (h *PlaceholderHandler) Projects(c *gin.Context) {
	response.Query(c, http.StatusOK, "Placeholder projects", PlaceholderProjects(), response.Meta{Found: true, Placeholder: true})
}
