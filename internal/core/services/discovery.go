package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// AIOMediaType is the media type advertised by discovery signals.
const AIOMediaType = "application/aio+json"

// robotsDirective is the robots.txt line naming the structured path.
const robotsDirective = "aio-content:"

// Pre-compiled expressions for signal parsing.
var (
	linkHeaderTarget = regexp.MustCompile(`^\s*<([^>]+)>`)
	linkTags         = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	hrefAttr         = regexp.MustCompile(`(?is)\bhref\s*=\s*["']([^"']+)["']`)
	relAlternate     = regexp.MustCompile(`(?is)\brel\s*=\s*["']alternate["']`)
)

// DiscoveryResolver locates the structured-content endpoint for a URL
// via an ordered signal chain: Link header, <link> tag, robots.txt
// directive, then a direct probe of the conventional default path.
type DiscoveryResolver struct {
	transport   driven.Transport
	defaultPath string
}

// NewDiscoveryResolver creates a resolver over the given transport.
func NewDiscoveryResolver(transport driven.Transport, defaultPath string) *DiscoveryResolver {
	if defaultPath == "" {
		defaultPath = domain.DefaultAIOPath
	}
	return &DiscoveryResolver{transport: transport, defaultPath: defaultPath}
}

// Resolve walks the signal chain for a URL. It performs exactly one GET
// of the page itself, serving both the header and tag signals, and
// returns that page's body so callers can reuse it for fallback
// extraction without a second fetch.
//
// A nil target means no signal matched - a normal outcome. The only
// error case is a transport failure reaching the original URL itself.
func (r *DiscoveryResolver) Resolve(ctx context.Context, rawURL string) (*domain.DiscoveryTarget, []byte, error) {
	origin, err := originOf(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	logger.Section("Discovery")
	logger.Debug("Resolving %s", rawURL)

	resp, err := r.transport.Fetch(ctx, rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}

	// Signal 1: Link response header.
	if target := parseLinkHeader(resp.Header.Values("Link")); target != "" {
		logger.Info("Found Link header target: %s", target)
		return &domain.DiscoveryTarget{URL: resolveAgainst(origin, target), Method: domain.DiscoveryHeader}, resp.Body, nil
	}

	// Signal 2: <link> tag in the already-fetched body.
	if resp.OK() {
		if target := parseLinkTag(string(resp.Body)); target != "" {
			logger.Info("Found <link> tag target: %s", target)
			return &domain.DiscoveryTarget{URL: resolveAgainst(origin, target), Method: domain.DiscoveryTag}, resp.Body, nil
		}
	}

	// Signal 3: robots.txt directive at the origin.
	if target := r.checkRobots(ctx, origin); target != "" {
		logger.Info("Found robots.txt target: %s", target)
		return &domain.DiscoveryTarget{URL: resolveAgainst(origin, target), Method: domain.DiscoveryRobots}, resp.Body, nil
	}

	// Signal 4: direct probe of the conventional path.
	if target := r.checkDirect(ctx, origin); target != "" {
		logger.Info("Default path responded: %s", target)
		return &domain.DiscoveryTarget{URL: target, Method: domain.DiscoveryDirect}, resp.Body, nil
	}

	logger.Debug("All discovery signals exhausted")
	return nil, resp.Body, nil
}

// checkRobots scans robots.txt for the AIO-Content directive.
// Transport errors degrade to "signal absent".
func (r *DiscoveryResolver) checkRobots(ctx context.Context, origin string) string {
	resp, err := r.transport.Fetch(ctx, origin+"/robots.txt")
	if err != nil || !resp.OK() {
		return ""
	}

	for _, line := range strings.Split(string(resp.Body), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len(robotsDirective) {
			continue
		}
		if strings.EqualFold(line[:len(robotsDirective)], robotsDirective) {
			return strings.TrimSpace(line[len(robotsDirective):])
		}
	}
	return ""
}

// checkDirect probes the conventional default path with a lightweight
// HEAD, falling back to GET content sniffing when the content type is
// inconclusive.
func (r *DiscoveryResolver) checkDirect(ctx context.Context, origin string) string {
	target := origin + r.defaultPath

	resp, err := r.transport.Head(ctx, target)
	if err != nil || !resp.OK() {
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "aio+json") || strings.Contains(contentType, "application/json") {
		return target
	}

	// No usable content type: GET and sniff for the version field.
	resp, err = r.transport.Fetch(ctx, target)
	if err != nil || !resp.OK() {
		return ""
	}
	var probe struct {
		Version string `json:"aio_version"`
	}
	if json.Unmarshal(resp.Body, &probe) == nil && probe.Version != "" {
		return target
	}
	return ""
}

// parseLinkHeader extracts the first alternate aio+json target from
// Link header values. Malformed entries are treated as absent.
func parseLinkHeader(values []string) string {
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if !strings.Contains(part, `rel="alternate"`) {
				continue
			}
			if !strings.Contains(part, `type="`+AIOMediaType+`"`) {
				continue
			}
			if m := linkHeaderTarget.FindStringSubmatch(part); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// parseLinkTag extracts the href of the first matching
// <link rel="alternate" type="application/aio+json"> tag.
// Missing attributes make a tag absent, not a parse error.
func parseLinkTag(body string) string {
	for _, tag := range linkTags.FindAllString(body, -1) {
		if !relAlternate.MatchString(tag) {
			continue
		}
		if !strings.Contains(strings.ToLower(tag), AIOMediaType) {
			continue
		}
		if m := hrefAttr.FindStringSubmatch(tag); m != nil {
			return m[1]
		}
	}
	return ""
}

// originOf returns scheme://host for a URL.
func originOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q has no origin", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// resolveAgainst resolves a possibly relative target against the origin
// of the requested URL, never against any redirect target encountered
// mid-chain.
func resolveAgainst(origin, target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return origin + target
}
