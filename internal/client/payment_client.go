package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPPaymentClient instructs the payment gateway wrapper to refund held
// funds. Capture and settlement are owned by the gateway, not here.
type HTTPPaymentClient struct {
	Address string
}

func NewHTTPPaymentClient(address string) *HTTPPaymentClient {
	return &HTTPPaymentClient{Address: address}
}

type refundRequest struct {
	EscrowID string  `json:"escrow_id"`
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
}

func (c *HTTPPaymentClient) IssueRefund(escrowID, userID string, amount float64) error {
	requestBodyBytes, err := json.Marshal(refundRequest{
		EscrowID: escrowID,
		UserID:   userID,
		Amount:   amount,
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/payments/refund", c.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errorResponse ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
		return fmt.Errorf("payment service returned status %d", response.StatusCode)
	}
	return errors.New(errorResponse.Error)
}
