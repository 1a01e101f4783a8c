package service

import (
	"context"
	"fmt"

	appconfig "health-services-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"
)

type MailService interface {
	SendTransactional(ctx context.Context, recipients []string, subject, htmlContent string) error
}

type mailService struct {
	client *ses.Client
	log    *logrus.Logger
	sender string
}

func NewMailService(cfg appconfig.MailConfig, log *logrus.Logger) (MailService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &mailService{
		client: ses.NewFromConfig(awsCfg),
		log:    log,
		sender: cfg.Sender,
	}, nil
}

func (s *mailService) SendTransactional(ctx context.Context, recipients []string, subject, htmlContent string) error {
	if subject == "" {
		subject = "Registration Confirmation Email"
	}
	if htmlContent == "" {
		htmlContent = "<p>Welcome!</p>"
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlContent),
				},
			},
		},
		Source: aws.String(s.sender),
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		s.log.Warnf("Failed to send email: %+v", err)
		return fmt.Errorf("email send failed: %w", err)
	}

	return nil
}
