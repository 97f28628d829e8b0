package domain

import "context"

// ServicePort defines the service contract for papers
type ServicePort interface {
	Query(ctx context.Context, in QueryInput) (QueryOutput, error)
	Dates(ctx context.Context, in DatesInput) (DatesOutput, error)
}
