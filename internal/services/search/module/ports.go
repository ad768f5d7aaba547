package module

import "codescout/internal/services/search/domain"

// Ports exposes the search service to sibling modules
type Ports struct {
	Search domain.ServicePort
}
