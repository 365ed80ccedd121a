package domain

import "strings"

// ClassifyManifest decides the execution mechanism of an action manifest
// from its runs section. A declared container image wins over everything;
// otherwise the "using" value is matched by substring for docker and node
// and exactly for composite. Matching is case-insensitive.
func ClassifyManifest(using string, hasImage bool) ManifestType {
	u := strings.ToLower(using)
	switch {
	case hasImage || strings.Contains(u, "docker"):
		return ManifestDocker
	case strings.Contains(u, "node"):
		return ManifestNode
	case u == "composite":
		return ManifestComposite
	default:
		return ManifestUnknown
	}
}
