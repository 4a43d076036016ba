// internal/channel/email.go
package channel

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	apperrors "educonnect/internal/common/errors"
)

// SESService is the subset of the SES client used here, split out for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESEmail sends emails through AWS SES.
type SESEmail struct {
	client  SESService
	from    string
	timeout time.Duration
}

func NewSESEmail(ctx context.Context, region, from string, timeout time.Duration) (*SESEmail, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESEmail{
		client:  ses.NewFromConfig(awsCfg),
		from:    from,
		timeout: timeout,
	}, nil
}

func NewSESEmailWithClient(client SESService, from string, timeout time.Duration) *SESEmail {
	return &SESEmail{client: client, from: from, timeout: timeout}
}

func (s *SESEmail) Send(ctx context.Context, address, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{address},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewDeliveryTimeoutError(string(Email))
		}
		return apperrors.NewDeliveryFailedError(string(Email), err)
	}
	return nil
}
