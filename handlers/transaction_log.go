// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"fmt"
	"numdash-server/commons"
	"numdash-server/db"
	"numdash-server/models"
	"numdash-server/rabbitmq"
)

// recordTransaction stores t and announces it on the event exchange. A
// failed publish is logged and does not fail the request.
func recordTransaction(ctx context.Context, t *models.Transaction, routingKey, accountID string) error {
	if err := db.Conn.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	event := models.NewTransactionEvent(routingKey, accountID, *t)
	if err := rabbitmq.Events.Publish(ctx, routingKey, event); err != nil {
		commons.Logger.Errorf("Failed to publish %s event for %s: %v", routingKey, t.TID, err)
	}
	return nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
