package domain

import "context"

type Repository interface {
	// ListSubscribedOperations returns the distinct operation numbers with
	// at least one active subscription, in any category.
	ListSubscribedOperations(ctx context.Context) ([]string, error)
	// ListActiveRecipients resolves the active subscribers for one facility
	// and category, joined with their contact details.
	ListActiveRecipients(ctx context.Context, operationNumber string, category Category) ([]Recipient, error)
	// ListDigestRecipients returns every subscriber who opted into the
	// daily digest email.
	ListDigestRecipients(ctx context.Context) ([]Recipient, error)
}
