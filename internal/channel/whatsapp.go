// internal/channel/whatsapp.go
package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "educonnect/internal/common/errors"
	commonhttp "educonnect/internal/common/http"
)

// WhatsAppClient sends text messages through the WhatsApp Business Cloud API.
type WhatsAppClient struct {
	http          *commonhttp.Client
	baseURL       string
	accessToken   string
	phoneNumberID string
	timeout       time.Duration
}

func NewWhatsAppClient(baseURL, accessToken, phoneNumberID string, timeout time.Duration) *WhatsAppClient {
	return &WhatsAppClient{
		http:          commonhttp.NewClient(timeout),
		baseURL:       baseURL,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		timeout:       timeout,
	}
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

func (c *WhatsAppClient) Send(ctx context.Context, number, text string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}
	resp, err := c.http.PostJSON(ctx, url, headers, whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               number,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewDeliveryTimeoutError(string(WhatsApp))
		}
		return apperrors.NewDeliveryFailedError(string(WhatsApp), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apperrors.NewDeliveryFailedError(string(WhatsApp),
			fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, commonhttp.ReadError(resp, 512)))
	}
	return nil
}
