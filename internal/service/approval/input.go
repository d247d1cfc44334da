package approval

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 5000
	maxDetailsSize       = 64 << 10
	maxVisitMinutes      = 24 * 60
)

// SubmitInput describes a proposed catalog change.
type SubmitInput struct {
	ActionType  domain.ChangeAction
	ContentType domain.ContentType
	TargetID    *int64
	TargetName  string
	Details     json.RawMessage
}

// Validate checks the request shape and decodes Details into the payload of
// its content type. DELETE carries no details.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if !i.ActionType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "actionType", Message: "must be ADD, EDIT or DELETE"})
	}
	if !i.ContentType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "contentType", Message: "must be MAP, SITE, TOUR or CITY"})
	}

	switch {
	case i.ActionType == domain.ChangeActionAdd && i.TargetID != nil:
		errs = append(errs, domain.FieldError{Field: "targetId", Message: "must be empty for ADD"})
	case i.ActionType != domain.ChangeActionAdd && (i.TargetID == nil || *i.TargetID <= 0):
		errs = append(errs, domain.FieldError{Field: "targetId", Message: "required"})
	}

	name := strings.TrimSpace(i.TargetName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "targetName", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "targetName", Message: "too long"})
	}

	if len(i.Details) > maxDetailsSize {
		errs = append(errs, domain.FieldError{Field: "details", Message: "too large"})
	} else if len(errs) == 0 && i.ActionType != domain.ChangeActionDelete {
		if _, err := decodeContent(i.ContentType, i.Details); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// decodeContent decodes and validates the typed payload for ct. The result
// is one of domain.CityContent, MapContent, SiteContent or TourContent.
func decodeContent(ct domain.ContentType, raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.NewValidationError("details", "required")
	}

	switch ct {
	case domain.ContentTypeCity:
		var c domain.CityContent
		if err := strictDecode(raw, &c); err != nil {
			return nil, err
		}
		return c, validateContent(c.Name, c.Description, nil, &c.SubscriptionPrice)
	case domain.ContentTypeMap:
		var m domain.MapContent
		if err := strictDecode(raw, &m); err != nil {
			return nil, err
		}
		return m, validateContent(m.Name, m.Description, &m.CityID, &m.Price)
	case domain.ContentTypeSite:
		var s domain.SiteContent
		if err := strictDecode(raw, &s); err != nil {
			return nil, err
		}
		if err := validateContent(s.Name, s.Description, &s.CityID, nil); err != nil {
			return nil, err
		}
		if s.VisitMinutes < 0 || s.VisitMinutes > maxVisitMinutes {
			return nil, domain.NewValidationError("details.visitMinutes", "out of range")
		}
		return s, nil
	case domain.ContentTypeTour:
		var t domain.TourContent
		if err := strictDecode(raw, &t); err != nil {
			return nil, err
		}
		if err := validateContent(t.Name, t.Description, &t.CityID, nil); err != nil {
			return nil, err
		}
		for _, id := range t.SiteIDs {
			if id <= 0 {
				return nil, domain.NewValidationError("details.siteIds", "must be positive")
			}
		}
		return t, nil
	}
	return nil, domain.NewValidationError("contentType", "unknown")
}

func strictDecode(raw json.RawMessage, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return domain.NewValidationError("details", "malformed: "+err.Error())
	}
	return nil
}

func validateContent(name, description string, cityID *int64, price *decimal.Decimal) error {
	var errs []domain.FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "details.name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "details.name", Message: "too long"})
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "details.description", Message: "too long"})
	}
	if cityID != nil && *cityID <= 0 {
		errs = append(errs, domain.FieldError{Field: "details.cityId", Message: "required"})
	}
	if price != nil {
		if msg := priceProblem(*price); msg != "" {
			errs = append(errs, domain.FieldError{Field: "details.price", Message: msg})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// priceProblem describes why p is not a valid catalog price, or returns ""
// for positive amounts with at most two decimal places.
func priceProblem(p decimal.Decimal) string {
	if !p.IsPositive() {
		return "must be positive"
	}
	if !p.Equal(p.Round(2)) {
		return "at most two decimal places"
	}
	return ""
}
