package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/botgate/internal/core"
)

var (
	ErrRoutesNotFound = errors.New("routes file not found")
	ErrRoutesParsing  = errors.New("routes file parsing failed")
)

// Route is one webhook ingress entry: a path bound to the credentials that
// act on updates received there. Primary-track jobs use Token; secondary-
// track jobs (membership changes, join requests) use SecondaryToken, falling
// back to Token when the route belongs to a single bot.
type Route struct {
	Name           string
	Path           string
	Token          string
	SecondaryToken string
}

// ResolveToken selects the credential for a routing decision. The selection
// depends only on the decision's track, never on event content.
func (r Route) ResolveToken(d core.Decision) (string, error) {
	token := r.Token
	if d.Track == core.TrackSecondary && r.SecondaryToken != "" {
		token = r.SecondaryToken
	}
	if token == "" {
		return "", fmt.Errorf("%w: route %q, job type %s", core.ErrMissingCredential, r.Name, d.JobType())
	}
	return token, nil
}

// defaultRoutes is the standard two-bot deployment: the main bot's webhook
// hands group-management updates to the TGMS bot, and the TGMS bot has its
// own endpoint handling both tracks itself.
func defaultRoutes(botToken, tgmsToken string) []Route {
	return []Route{
		{Name: "main", Path: "/api/webhook", Token: botToken, SecondaryToken: tgmsToken},
		{Name: "tgms", Path: "/api/webhook_tgms", Token: tgmsToken},
	}
}

type routesFile struct {
	Routes []routeSpec `yaml:"routes"`
}

// routeSpec references tokens by environment variable name so the YAML file
// never holds secrets.
type routeSpec struct {
	Name              string `yaml:"name"`
	Path              string `yaml:"path"`
	TokenEnv          string `yaml:"token_env"`
	SecondaryTokenEnv string `yaml:"secondary_token_env"`
}

// LoadRoutesFile loads additional webhook routes from a YAML file, resolving
// each route's credentials from the environment.
func LoadRoutesFile(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRoutesNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file routesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoutesParsing, err)
	}

	routes := make([]Route, 0, len(file.Routes))
	for i, spec := range file.Routes {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: route %d has no name", ErrRoutesParsing, i)
		}
		if !strings.HasPrefix(spec.Path, "/") {
			return nil, fmt.Errorf("%w: route %q path must start with /", ErrRoutesParsing, spec.Name)
		}
		routes = append(routes, Route{
			Name:           spec.Name,
			Path:           spec.Path,
			Token:          os.Getenv(spec.TokenEnv),
			SecondaryToken: os.Getenv(spec.SecondaryTokenEnv),
		})
	}
	return routes, nil
}
