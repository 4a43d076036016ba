// internal/channel/push.go
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	apperrors "educonnect/internal/common/errors"
)

// SNSPush sends push notifications through SNS platform-application
// endpoints. The device token is the endpoint ARN registered at device
// enrollment.
type SNSPush struct {
	client  SNSService
	timeout time.Duration
}

func NewSNSPush(ctx context.Context, region string, timeout time.Duration) (*SNSPush, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSPush{
		client:  sns.NewFromConfig(awsCfg),
		timeout: timeout,
	}, nil
}

func NewSNSPushWithClient(client SNSService, timeout time.Duration) *SNSPush {
	return &SNSPush{client: client, timeout: timeout}
}

type pushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (s *SNSPush) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(pushPayload{Title: title, Body: body, Data: data})
	if err != nil {
		return apperrors.NewDeliveryFailedError(string(Push), err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(deviceToken),
		Message:   aws.String(string(payload)),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewDeliveryTimeoutError(string(Push))
		}
		return apperrors.NewDeliveryFailedError(string(Push), err)
	}
	return nil
}
