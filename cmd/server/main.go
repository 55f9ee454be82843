package main

import (
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"
	"toolvote/internal/db"
	"toolvote/internal/handlers"
	"toolvote/internal/middleware"
	"toolvote/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Seed the catalogue from the conference CSV on first boot. A failure
	// here means an empty dashboard, which is fatal by design.
	csvPath := os.Getenv("TOOLS_CSV")
	if csvPath == "" {
		csvPath = "tools.csv"
	}
	seeded, err := services.SeedFromCSV(csvPath)
	if err != nil {
		log.Fatalf("Failed to seed catalogue from %s: %v", csvPath, err)
	}
	if seeded > 0 {
		log.Printf("Seeded %d tools from %s", seeded, csvPath)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions (anonymous voter id + consent flag live here)
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("toolvote_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadVoter())

	// Handlers
	dashboardHandler := handlers.NewDashboardHandler()
	toolHandler := handlers.NewToolHandler()
	voteHandler := handlers.NewVoteHandler()
	commentHandler := handlers.NewCommentHandler()
	noteHandler := handlers.NewNoteHandler()
	chartHandler := handlers.NewChartHandler()
	shareHandler := handlers.NewShareHandler()
	consentHandler := handlers.NewConsentHandler()

	// Outside the consent gate: the notice itself and the share image
	r.GET("/consent", consentHandler.Show)
	r.POST("/consent/agree", consentHandler.Agree)
	r.GET("/share/qr.png", shareHandler.QR)

	// Everything else sits behind the privacy notice
	page := r.Group("/")
	page.Use(middleware.ConsentRequired())
	{
		page.GET("", dashboardHandler.Index)
		page.GET("/leaderboard", dashboardHandler.Leaderboard)
		page.GET("/tags", dashboardHandler.Tags)
		page.GET("/t/:tid", toolHandler.Detail)

		page.POST("/vote/:tid/up", voteHandler.Up)
		page.POST("/vote/:tid/down", voteHandler.Down)
		page.POST("/t/:tid/comment", commentHandler.Create)

		page.GET("/suggest", toolHandler.ShowSuggest)
		page.POST("/suggest", toolHandler.Suggest)
		page.GET("/manage", toolHandler.ShowManage)
		page.POST("/manage", toolHandler.Manage)

		page.POST("/note", noteHandler.Create)
		page.GET("/notes", noteHandler.List)

		page.GET("/chart/section/:sid", chartHandler.Section)
		page.GET("/chart/leaderboard.png", chartHandler.Leaderboard)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("toolvote server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"sentimentEmoji": func(s interface{}) string {
			switch fmt.Sprintf("%v", s) {
			case "pro":
				return "👍"
			case "con":
				return "👎"
			default:
				return "💬"
			}
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Dashboard
	r.AddFromFilesFuncs("dashboard/index.html", funcMap, assemble(templatesDir+"/views/dashboard/index.html")...)
	r.AddFromFilesFuncs("dashboard/leaderboard.html", funcMap, assemble(templatesDir+"/views/dashboard/leaderboard.html")...)
	r.AddFromFilesFuncs("dashboard/tags.html", funcMap, assemble(templatesDir+"/views/dashboard/tags.html")...)

	// Tool
	r.AddFromFilesFuncs("tool/detail.html", funcMap, assemble(templatesDir+"/views/tool/detail.html")...)
	r.AddFromFilesFuncs("tool/suggest.html", funcMap, assemble(templatesDir+"/views/tool/suggest.html")...)
	r.AddFromFilesFuncs("tool/manage.html", funcMap, assemble(templatesDir+"/views/tool/manage.html")...)

	// Notes
	r.AddFromFilesFuncs("note/list.html", funcMap, assemble(templatesDir+"/views/note/list.html")...)

	// Consent
	r.AddFromFilesFuncs("consent.html", funcMap, assemble(templatesDir+"/views/consent.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
