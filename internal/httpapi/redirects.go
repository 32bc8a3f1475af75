package httpapi

import "net/http"

// legacyPaths maps URLs of the previous site that are still indexed to
// their current pages.
var legacyPaths = map[string]string{
	"/old-about":                  "/about",
	"/old-services":               "/services",
	"/portfolio":                  "/track-record",
	"/investments":                "/track-record",
	"/deals":                      "/current-transactions",
	"/contact-us":                 "/contact",
	"/personnel/founders-profile": "/about",
	"/corporate-profile":          "/about",
	"/about-us-3":                 "/about",
	"/team-frame-style":           "/about",
	"/author/vp-admin":            "/about",
	"/author/vp-admin/page/2":     "/about",
	"/gallery":                    "/portfolio",

	"/services/capital-advisory":                          "/services",
	"/services/network":                                   "/services",
	"/services/merger-acquisition":                        "/services",
	"/services/financial-strategy-and-corporate-advisory": "/services",
	"/services/valuation-advisory":                        "/services",

	"/portfolio_tag/merger-acquisition": "/portfolio",
	"/portfolio_tag/growth-capital":     "/portfolio",
	"/portfolio/my-republic":            "/portfolio",
	"/portfolio/pd":                     "/portfolio",
	"/portfolio/express-in-music":       "/portfolio",
	"/portfolio/autobot":                "/portfolio",
	"/portfolio/project-skin":           "/portfolio",
	"/portfolio/omni":                   "/portfolio",
	"/portfolio/project-cyber":          "/portfolio",
	"/portfolio/qoo-10":                 "/portfolio",
	"/portfolio/project-lab":            "/portfolio",
	"/portfolio/reka-health":            "/portfolio",

	"/even-the-all-powerful-pointing": "/about",
}

func legacyRedirects(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if target, ok := legacyPaths[r.URL.Path]; ok {
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
