package adapthttp

import (
	"net/http"

	"biofeedback/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the optional SSO configuration. When Enabled is false
// only cookie-session and forward-auth login are available.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	bio         *app.BiofeedbackService
	insights    *app.InsightsService
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(bs *app.BiofeedbackService, is *app.InsightsService, as *app.AuthService, oc OIDCConfig, webDir string) *Server {
	return &Server{bio: bs, insights: is, authSvc: as, oidcConfig: oc, webDir: webDir}
}

// WithoutAuth disables the auth middleware. For tests and local development.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/biofeedback/entries", s.handleEntries)
	protected.HandleFunc("/biofeedback/entries/recent", s.handleEntriesRecent)
	protected.HandleFunc("/biofeedback/aggregate", s.handleAggregate)
	protected.HandleFunc("/biofeedback/day", s.handleDay)
	protected.HandleFunc("/biofeedback/aggregations", s.handleAggregations)
	protected.HandleFunc("/insights", s.handleInsights)

	api.Handle("/biofeedback/", s.authMiddleware(protected))
	api.Handle("/insights", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return withNoCache(s.loggingMiddleware(root))
}
