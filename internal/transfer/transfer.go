// Package transfer moves whole UserData aggregates across the process
// boundary: JSON export/import and the Google Sheets board export.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/positionfit/positionfit/internal/domain"
)

// ErrMalformedImport marks imported data that is unparseable or not shaped
// like a UserData aggregate. The store is left untouched when it occurs.
var ErrMalformedImport = errors.New("transfer: malformed user data")

// Export serializes the whole aggregate as UTF-8 JSON.
func Export(u *domain.UserData) ([]byte, error) {
	if u == nil || u.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrMalformedImport)
	}
	out, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("export user data: %w", err)
	}
	return out, nil
}

// Import parses a whole-aggregate dump. It is the inverse of Export: a
// full replace, never a merge with existing data. Validation failures
// return ErrMalformedImport so callers can surface them without writing
// anything.
func Import(data []byte) (*domain.UserData, error) {
	var u domain.UserData
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	if err := validate(&u); err != nil {
		return nil, err
	}

	return &u, nil
}

func validate(u *domain.UserData) error {
	if u.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrMalformedImport)
	}

	analysisIDs := make(map[string]struct{}, len(u.Analyses))
	for _, rec := range u.Analyses {
		if rec.ID == "" {
			return fmt.Errorf("%w: analysis without id", ErrMalformedImport)
		}
		if _, dup := analysisIDs[rec.ID]; dup {
			return fmt.Errorf("%w: duplicate analysis id %q", ErrMalformedImport, rec.ID)
		}
		if rec.CurrentStep != "" && !rec.CurrentStep.Valid() {
			return fmt.Errorf("%w: analysis %q has unknown step %q", ErrMalformedImport, rec.ID, rec.CurrentStep)
		}
		analysisIDs[rec.ID] = struct{}{}
	}

	applicationIDs := make(map[string]struct{}, len(u.Applications))
	for _, app := range u.Applications {
		if app.ID == "" {
			return fmt.Errorf("%w: application without id", ErrMalformedImport)
		}
		if _, dup := applicationIDs[app.ID]; dup {
			return fmt.Errorf("%w: duplicate application id %q", ErrMalformedImport, app.ID)
		}
		if !app.Status.Valid() {
			return fmt.Errorf("%w: application %q has unknown status %q", ErrMalformedImport, app.ID, app.Status)
		}
		if _, ok := analysisIDs[app.AnalysisID]; !ok {
			return fmt.Errorf("%w: application %q references missing analysis %q", ErrMalformedImport, app.ID, app.AnalysisID)
		}
		applicationIDs[app.ID] = struct{}{}
	}

	return nil
}
