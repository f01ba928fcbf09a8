package model

// Checkout provider webhook payload shapes.

type CheckoutObject struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
}

type CheckoutEventData struct {
	Object CheckoutObject `json:"object"`
}

type CheckoutWebhookEvent struct {
	ID         string            `json:"id"`
	EventType  string            `json:"type"`
	CreateTime string            `json:"created"`
	Data       CheckoutEventData `json:"data"`
}
