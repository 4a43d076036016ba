// internal/channel/sms.go
package channel

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	apperrors "educonnect/internal/common/errors"
)

// SNSService is the subset of the SNS client used here, split out for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSms sends SMS messages through AWS SNS.
type SNSSms struct {
	client   SNSService
	senderID string
	timeout  time.Duration
}

func NewSNSSms(ctx context.Context, region, senderID string, timeout time.Duration) (*SNSSms, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSSms{
		client:   sns.NewFromConfig(awsCfg),
		senderID: senderID,
		timeout:  timeout,
	}, nil
}

// NewSNSSmsWithClient wires an existing SNS client, used by tests and by the
// push sender which shares the same client.
func NewSNSSmsWithClient(client SNSService, senderID string, timeout time.Duration) *SNSSms {
	return &SNSSms{client: client, senderID: senderID, timeout: timeout}
}

func (s *SNSSms) Send(ctx context.Context, phone, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(text),
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		}
	}

	if _, err := s.client.Publish(ctx, input); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewDeliveryTimeoutError(string(SMS))
		}
		return apperrors.NewDeliveryFailedError(string(SMS), err)
	}
	return nil
}
