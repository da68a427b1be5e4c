package azure

import (
	"context"
	"errors"
)

// SubscriptionTenantID returns the tenant the subscription belongs to
func (c *Client) SubscriptionTenantID(ctx context.Context, subscriptionID string) (string, error) {
	resp, err := c.SubscriptionsClient.Get(ctx, subscriptionID, nil)
	if err != nil {
		return "", notFound(err, "subscription", subscriptionID)
	}

	tenantID := deref(resp.TenantID)
	if tenantID == "" {
		return "", errors.New("subscription " + subscriptionID + " reports no tenant")
	}

	return tenantID, nil
}
