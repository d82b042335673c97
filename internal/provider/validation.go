package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/miqops/miqctl/internal/platform/miq"
	"github.com/miqops/miqctl/internal/util/retry"
)

const statusValid = "Valid"

// statusPending is reported for an authtype whose validation has not
// completed yet.
const statusPending = "Validation in progress"

var (
	errValidationPending = errors.New("authentication validation pending")
	errValidationInvalid = errors.New("authentication validation failed")
)

// AuthStatus is one authtype's observed validation outcome.
type AuthStatus struct {
	Status  string `json:"status"`
	Details string `json:"status_details"`
}

// ValidationDetails maps each authtype under test to its outcome.
type ValidationDetails map[string]AuthStatus

func (d ValidationDetails) String() string {
	authtypes := make([]string, 0, len(d))
	for t := range d {
		authtypes = append(authtypes, t)
	}
	sort.Strings(authtypes)

	parts := make([]string, 0, len(authtypes))
	for _, t := range authtypes {
		s := d[t]
		if s.Details != "" {
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", t, s.Status, s.Details))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", t, s.Status))
		}
	}
	return strings.Join(parts, "; ")
}

// validationSnapshot fetches the current per-authtype validation records,
// keyed by authtype. Taken before a credential-affecting write so the
// poller can detect the server completing a fresh validation pass.
func (c *Converger) validationSnapshot(ctx context.Context, id miq.ID) (map[string]miq.ValidationRecord, error) {
	records, err := c.gw.GetProviderAuthentications(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider data: %w", err)
	}
	return byAuthType(records), nil
}

// awaitValidation polls the provider's validation records until every
// authtype under test has settled, then reports the collective verdict.
//
// "Settled" means the (last_valid_on, last_invalid_on) tuple changed
// relative to the prior snapshot. The explicit-failure verdict is only
// reached after all authtypes settled: a fast Invalid on one authtype
// keeps polling while another is still pending. The loop is bounded by
// the configured iteration budget with a fixed delay between fetches;
// exhausting it reports failure with the last observed details.
//
// The returned error is reserved for transport failures and cancellation;
// a validation verdict, positive or negative, is not an error.
func (c *Converger) awaitValidation(ctx context.Context, id miq.ID, prior map[string]miq.ValidationRecord, authtypes []string) (bool, ValidationDetails, error) {
	var details ValidationDetails

	pollErr := retry.Do(ctx, func() error {
		records, err := c.gw.GetProviderAuthentications(ctx, id)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to get provider data: %w", err))
		}
		current := byAuthType(records)
		details = detailsFor(current, authtypes)

		for _, t := range authtypes {
			old, curr := prior[t], current[t]
			if old.LastValidOn == curr.LastValidOn && old.LastInvalidOn == curr.LastInvalidOn {
				c.log.Debug("validation not settled yet", zap.String("authtype", t))
				return errValidationPending
			}
		}

		anyFailed := false
		allValid := true
		for _, t := range authtypes {
			switch current[t].Status {
			case statusValid:
			case "":
				allValid = false
			default:
				anyFailed = true
				allValid = false
			}
		}
		if anyFailed {
			return retry.Fatal(errValidationInvalid)
		}
		if allValid {
			return nil
		}
		return errValidationPending
	},
		retry.WithMaxAttempts(c.timeouts.PollIterations),
		retry.WithInitialDelay(c.timeouts.PollInterval),
		retry.WithMaxDelay(c.timeouts.PollInterval),
		retry.WithMultiplier(1.0))

	switch {
	case pollErr == nil:
		return true, details, nil
	case errors.Is(pollErr, errValidationInvalid):
		return false, details, nil
	case errors.Is(pollErr, errValidationPending):
		// Iteration budget exhausted without every authtype settling.
		return false, details, nil
	default:
		return false, nil, pollErr
	}
}

func byAuthType(records []miq.ValidationRecord) map[string]miq.ValidationRecord {
	byType := make(map[string]miq.ValidationRecord, len(records))
	for _, r := range records {
		byType[r.AuthType] = r
	}
	return byType
}

func detailsFor(current map[string]miq.ValidationRecord, authtypes []string) ValidationDetails {
	details := make(ValidationDetails, len(authtypes))
	for _, t := range authtypes {
		record := current[t]
		status := record.Status
		if status == "" {
			status = statusPending
		}
		details[t] = AuthStatus{Status: status, Details: record.StatusDetails}
	}
	return details
}
