// Package protocol defines the wire unit exchanged over the WebSocket
// connection and the payloads carried by each action.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action selects a protocol operation. Requests and responses come in
// <NAME>_REQUEST / <NAME>_RESPONSE pairs.
type Action string

const (
	ActionLoginRequest                Action = "LOGIN_REQUEST"
	ActionLoginResponse               Action = "LOGIN_RESPONSE"
	ActionRegisterRequest             Action = "REGISTER_REQUEST"
	ActionRegisterResponse            Action = "REGISTER_RESPONSE"
	ActionGetCatalogRequest           Action = "GET_CATALOG_REQUEST"
	ActionGetCatalogResponse          Action = "GET_CATALOG_RESPONSE"
	ActionGetCityDetailsRequest       Action = "GET_CITY_DETAILS_REQUEST"
	ActionGetCityDetailsResponse      Action = "GET_CITY_DETAILS_RESPONSE"
	ActionUpdatePriceRequest          Action = "UPDATE_PRICE_REQUEST"
	ActionUpdatePriceResponse         Action = "UPDATE_PRICE_RESPONSE"
	ActionGetPendingApprovalsRequest  Action = "GET_PENDING_APPROVALS_REQUEST"
	ActionGetPendingApprovalsResponse Action = "GET_PENDING_APPROVALS_RESPONSE"
	ActionApprovePendingRequest       Action = "APPROVE_PENDING_REQUEST"
	ActionApprovePendingResponse      Action = "APPROVE_PENDING_RESPONSE"
	ActionDenyPendingRequest          Action = "DENY_PENDING_REQUEST"
	ActionDenyPendingResponse         Action = "DENY_PENDING_RESPONSE"
	ActionPurchaseRequest             Action = "PURCHASE_REQUEST"
	ActionPurchaseResponse            Action = "PURCHASE_RESPONSE"
	ActionSubmitContentRequest        Action = "SUBMIT_CONTENT_REQUEST"
	ActionSubmitContentResponse       Action = "SUBMIT_CONTENT_RESPONSE"
	ActionViewMapRequest              Action = "VIEW_MAP_REQUEST"
	ActionViewMapResponse             Action = "VIEW_MAP_RESPONSE"
	ActionDownloadMapRequest          Action = "DOWNLOAD_MAP_REQUEST"
	ActionDownloadMapResponse         Action = "DOWNLOAD_MAP_RESPONSE"
	ActionGetActivityReportRequest    Action = "GET_ACTIVITY_REPORT_REQUEST"
	ActionGetActivityReportResponse   Action = "GET_ACTIVITY_REPORT_RESPONSE"

	// ActionError may stand in for any response.
	ActionError Action = "ERROR"
	// ActionNotification marks an unsolicited server push. It never carries an id.
	ActionNotification Action = "NOTIFICATION"
)

const (
	requestSuffix  = "_REQUEST"
	responseSuffix = "_RESPONSE"
)

// IsRequest reports whether a is a <NAME>_REQUEST tag.
func (a Action) IsRequest() bool {
	return strings.HasSuffix(string(a), requestSuffix) && len(a) > len(requestSuffix)
}

// IsResponse reports whether a is a <NAME>_RESPONSE tag.
func (a Action) IsResponse() bool {
	return strings.HasSuffix(string(a), responseSuffix) && len(a) > len(responseSuffix)
}

// Response returns the response tag paired with a request tag.
// It returns ActionError for anything that is not a request.
func (a Action) Response() Action {
	if !a.IsRequest() {
		return ActionError
	}
	return Action(strings.TrimSuffix(string(a), requestSuffix) + responseSuffix)
}

// Answers reports whether resp is an acceptable reply to request a:
// its paired response tag or ERROR.
func (a Action) Answers(resp Action) bool {
	return resp == ActionError || (a.IsRequest() && resp == a.Response())
}

func (a Action) String() string { return string(a) }

// Envelope is the wire unit. ID correlates a response with its request and
// is echoed unchanged by the server.
type Envelope struct {
	ID      string          `json:"id,omitempty"`
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload into an Envelope. A nil payload is omitted.
func NewEnvelope(id string, action Action, payload any) (Envelope, error) {
	env := Envelope{ID: id, Action: action}
	if payload == nil {
		return env, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", action, err)
	}
	env.Payload = raw
	return env, nil
}

// NewError builds an ERROR envelope answering the request with the given id.
func NewError(id string, reason Reason, message string) Envelope {
	raw, _ := json.Marshal(ErrorPayload{Reason: reason, Message: message})
	return Envelope{ID: id, Action: ActionError, Payload: raw}
}

// Decode unmarshals the envelope payload into out. An empty payload decodes
// as an empty JSON object.
func (e Envelope) Decode(out any) error {
	raw := e.Payload
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Action, err)
	}
	return nil
}

// Err returns the decoded ErrorPayload when e is an ERROR envelope.
func (e Envelope) Err() (ErrorPayload, bool) {
	if e.Action != ActionError {
		return ErrorPayload{}, false
	}
	var p ErrorPayload
	if err := e.Decode(&p); err != nil {
		return ErrorPayload{Reason: ReasonInternalError, Message: "malformed error payload"}, true
	}
	return p, true
}
