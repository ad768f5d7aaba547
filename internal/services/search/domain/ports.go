package domain

import "context"

// ServicePort defines the service contract for federated search
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (Response, error)
}
