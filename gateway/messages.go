// SPDX-License-Identifier: GPL-3.0-only

package gateway

import (
	"errors"
	"strings"
)

const FallbackMessage = "Something went wrong. Please try again or contact support."

var userMessages = map[string]string{
	"insufficient balance":           "Your balance is too low for this order. Please top up and try again.",
	"message flagged for moderation": "Your message was flagged for moderation and was not sent.",
	"country not found":              "One of the destination countries is not supported.",
	"invalid phone number":           "One or more phone numbers are invalid.",
	"message too long":               "Your message is too long. Messages are limited to 160 characters.",
	"unauthorized":                   "Your session has expired. Please sign in again.",
	"service not available":          "This service is not available right now.",
	"no numbers available":           "No numbers are available for this service at the moment.",
	"rate limit exceeded":            "Too many requests. Please wait a moment and try again.",
}

// UserMessage turns an upstream failure into text fit for the dashboard.
func UserMessage(err error) string {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		return FallbackMessage
	}
	if msg, ok := userMessages[strings.ToLower(upstream.Code)]; ok {
		return msg
	}
	return FallbackMessage
}
