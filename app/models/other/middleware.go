package other

// Payload shapes for the serverless middleware endpoints (inventory lookup,
// email subscription, captcha verification, commission requests).

type InventoryResponse struct {
	Body struct {
		Variant struct {
			InventoryQuantity  int    `json:"inventory_quantity"`
			FulfillmentService string `json:"fulfillment_service"`
		} `json:"variant"`
	} `json:"body"`
}

type SubscribeRequest struct {
	EmailAddress string            `json:"email_address" validate:"required,email"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields"`
}

// SubscribeResult is the list provider's record for both success and error
// outcomes. Conflicts are not transport errors: the provider answers with a
// normal body whose Title distinguishes the case.
type SubscribeResult struct {
	Title        string `json:"title"`
	Detail       string `json:"detail"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

const (
	TitleMemberExists    = "Member Exists"
	TitleInvalidResource = "Invalid Resource"

	StatusSubscribed = "subscribed"
	StatusPending    = "pending"
)

type CaptchaRequest struct {
	Token string `json:"token"`
}

type CaptchaResult struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

type CommissionRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Details string `json:"details" validate:"required"`
}
