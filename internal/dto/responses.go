package dto

import "github.com/fashionforward/psp-router/internal/model"

// AttemptResponse serializes one entry of a routing trail. DeclineReason is
// null for approved attempts.
type AttemptResponse struct {
	ProviderID    string  `json:"provider_id"`
	ProviderName  string  `json:"provider_name"`
	Approved      bool    `json:"approved"`
	DeclineReason *string `json:"decline_reason"`
	LatencyMS     int64   `json:"latency_ms"`
	AttemptNumber int     `json:"attempt_number"`
	Counted       bool    `json:"counted"`
}

// AuthorizeResponse serializes a RoutingResult. FinalProvider is null when
// every attempt declined.
type AuthorizeResponse struct {
	TransactionID  string            `json:"transaction_id"`
	Approved       bool              `json:"approved"`
	FinalProvider  *string           `json:"final_provider"`
	TotalAttempts  int               `json:"total_attempts"`
	TotalLatencyMS int64             `json:"total_latency_ms"`
	Strategy       string            `json:"strategy"`
	Attempts       []AttemptResponse `json:"attempts"`
}

// BatchAuthorizeResponse bundles the ordered results of a batch call.
type BatchAuthorizeResponse struct {
	Total    int                 `json:"total"`
	Approved int                 `json:"approved"`
	Results  []AuthorizeResponse `json:"results"`
}

// ValidationError reports one rejected field of a batch item.
type ValidationError struct {
	Index   int    `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorListResponse is the error envelope for request validation failures.
type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewAuthorizeResponse maps a RoutingResult onto the wire shape.
func NewAuthorizeResponse(result *model.RoutingResult) AuthorizeResponse {
	attempts := make([]AttemptResponse, len(result.Attempts))
	for i, a := range result.Attempts {
		attempts[i] = AttemptResponse{
			ProviderID:    a.ProviderID,
			ProviderName:  a.ProviderName,
			Approved:      a.Approved,
			DeclineReason: optionalString(string(a.DeclineReason)),
			LatencyMS:     a.LatencyMS,
			AttemptNumber: a.AttemptNumber,
			Counted:       a.Counted,
		}
	}

	return AuthorizeResponse{
		TransactionID:  result.TransactionID,
		Approved:       result.Approved,
		FinalProvider:  optionalString(result.FinalProvider),
		TotalAttempts:  result.TotalAttempts,
		TotalLatencyMS: result.TotalLatencyMS,
		Strategy:       string(result.Strategy),
		Attempts:       attempts,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
