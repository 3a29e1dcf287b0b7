package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Config for the SES-backed mailer. AccessKeyID/SecretAccessKey may be
// empty, in which case the default AWS credential chain applies.
type Config struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.From, validation.Required),
	)
}

// SESMailer sends rendered templates through Amazon SES.
type SESMailer struct {
	svc  *ses.SES
	from string
}

func NewSES(cfg Config) (*SESMailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mailer: invalid config -> %w", err)
	}

	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(
			credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("mailer: create session -> %w", err)
	}

	return &SESMailer{svc: ses.New(sess), from: cfg.From}, nil
}

func (m *SESMailer) Send(ctx context.Context, to string, template string, data map[string]any) error {
	email, err := Render(template, data)
	if err != nil {
		return err
	}

	_, err = m.svc.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(email.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Data: aws.String(email.Text)},
				Html: &ses.Content{Data: aws.String(email.HTML)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("mailer: send %s to %s -> %w", template, to, err)
	}

	return nil
}
