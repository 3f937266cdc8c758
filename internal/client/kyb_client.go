package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tradelink/escrow-service/internal/domain"
)

// HTTPKYBClient queries the KYB verification collaborator. A pending or
// missing verification is a valid signal, not an error.
type HTTPKYBClient struct {
	Address string
}

func NewHTTPKYBClient(address string) *HTTPKYBClient {
	return &HTTPKYBClient{Address: address}
}

func (c *HTTPKYBClient) GetVerification(userID string) (*domain.KYBResult, error) {
	response, err := http.Get(fmt.Sprintf("%s/kyb/verifications/%s", c.Address, userID))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNotFound {
		return &domain.KYBResult{Status: domain.KYBPending}, nil
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var result domain.KYBResult
		if err := json.Unmarshal(responseBodyBytes, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	var errorResponse ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
		return nil, fmt.Errorf("kyb service returned status %d", response.StatusCode)
	}
	return nil, errors.New(errorResponse.Error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}
