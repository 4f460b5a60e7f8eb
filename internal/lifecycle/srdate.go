package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

// ErrLookupNotFound is returned by an SRLookup when the client master has no
// row for the requested client and position
var ErrLookupNotFound = errors.New("lookup not found")

// SRLookup resolves the SR lead time for a client opening
type SRLookup interface {
	SRDays(ctx context.Context, clientName, position string) (int, error)
}

// StaticLookup serves SR lead times from an in-memory list of openings
type StaticLookup []models.ClientOpening

func (s StaticLookup) SRDays(_ context.Context, clientName, position string) (int, error) {
	for _, o := range s {
		if strings.EqualFold(o.ClientName, clientName) && strings.EqualFold(o.Position, position) {
			return o.SRDays, nil
		}
	}
	return 0, ErrLookupNotFound
}

// SRDate returns joining + sr_days for the given opening. There is no
// fallback: a missing opening is an error.
func SRDate(ctx context.Context, lookup SRLookup, clientName, position string, joining time.Time) (time.Time, error) {
	if lookup == nil {
		return time.Time{}, fmt.Errorf("%s / %s: %w", clientName, position, ErrLookupNotFound)
	}
	days, err := lookup.SRDays(ctx, clientName, position)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s / %s: %w", clientName, position, err)
	}
	return models.Day(joining).AddDate(0, 0, days), nil
}
