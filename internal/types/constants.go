package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins drives the CORS allow-list. Development front-end ports
// are always present; ALLOWED_ORIGINS extends the list with a
// comma-separated set of deployment URLs.
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
