// SPDX-License-Identifier: GPL-3.0-only

package outbound

import (
	"context"
	"fmt"
	"numdash-server/commons/prefix"
	"numdash-server/docstore"
	"numdash-server/gateway"
	"strings"
	"unicode/utf8"
)

// Service runs quotes and sends against one classifier and document store.
type Service struct {
	Classifier *prefix.Classifier
	Store      docstore.Store
	Sender     Sender
}

func NewService(classifier *prefix.Classifier, store docstore.Store, sender Sender) *Service {
	return &Service{Classifier: classifier, Store: store, Sender: sender}
}

func CheckMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// BuildSendRequest checks the message and destinations and builds the
// upstream payload. A single blocked number fails the whole request; other
// invalid numbers are skipped.
func (s *Service) BuildSendRequest(numbers []prefix.PendingNumber, message string, priced []prefix.PricedCountry) (*SendPlan, error) {
	if err := CheckMessage(message); err != nil {
		return nil, err
	}

	plan := &SendPlan{Request: gateway.SendRequest{Message: message, Numbers: []string{}, Countries: []string{}}}
	for _, n := range numbers {
		v := s.Classifier.Validate(n.Raw)
		if v.Reason == prefix.ReasonBlocked {
			return nil, fmt.Errorf("%w: %s", ErrBlockedNumber, n.Raw)
		}
		if !v.Valid {
			plan.Skipped = append(plan.Skipped, v)
			continue
		}
		plan.Included = append(plan.Included, prefix.PendingNumber{Raw: n.Raw, Cleaned: v.Cleaned, IsValid: true})
		plan.Request.Numbers = append(plan.Request.Numbers, v.Cleaned)
		plan.Request.Countries = append(plan.Request.Countries, s.Classifier.TagCountry(v.Cleaned, priced))
	}
	if len(plan.Included) == 0 {
		return nil, ErrNoRecipients
	}
	return plan, nil
}

// ApplySendResult returns the input set left after a send: the failed
// numbers after a partial failure and nothing otherwise.
func (s *Service) ApplySendResult(pending []prefix.PendingNumber, result *gateway.SendResult) []prefix.PendingNumber {
	if result == nil || result.Outcome != gateway.OutcomePartial {
		return []prefix.PendingNumber{}
	}
	return s.Classifier.RetrySet(pending, result.FailedNumbers)
}

// Send prices, checks and submits one outbound SMS. Nothing is sent when a
// valid destination has no price. Numbers reported as failed are not charged.
func (s *Service) Send(ctx context.Context, token string, raws []string, message string) (*SendReport, error) {
	if err := CheckMessage(message); err != nil {
		return nil, err
	}
	numbers := s.Classifier.PendingNumbers(raws)
	for _, n := range numbers {
		if s.Classifier.Blocked(n.Cleaned) {
			return nil, fmt.Errorf("%w: %s", ErrBlockedNumber, n.Raw)
		}
	}

	priced, _, err := FetchPrices(ctx, s.Store, countriesToPrice(s.Classifier, numbers))
	if err != nil {
		return nil, err
	}
	plan, err := s.BuildSendRequest(numbers, message, priced)
	if err != nil {
		return nil, err
	}
	// A destination without a price is missing data, never a free message.
	if unmatched := s.Classifier.Breakdown(plan.Included, priced).Unmatched; len(unmatched) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnpriced, strings.Join(unmatched, ", "))
	}

	result, err := s.Sender.Send(ctx, token, plan.Request)
	if err != nil {
		return nil, err
	}

	failed := map[string]bool{}
	for _, f := range result.FailedNumbers {
		failed[prefix.Clean(f)] = true
	}
	var delivered []prefix.PendingNumber
	for _, n := range plan.Included {
		if !failed[n.Cleaned] {
			delivered = append(delivered, n)
		}
	}
	charged := s.Classifier.Breakdown(delivered, priced)

	return &SendReport{
		Plan:      plan,
		Result:    result,
		Charged:   charged.Total,
		PriceUnit: charged.PriceUnit,
		Retry:     s.ApplySendResult(plan.Included, result),
	}, nil
}
