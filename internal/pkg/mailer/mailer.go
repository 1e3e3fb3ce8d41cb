package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/pinswap/api/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds a mailer for conf.Provider. "ses" sends through AWS SES; "noop" and
// unknown providers only log.
func New(conf *config.MailerConfig) Mailer {
	if conf == nil {
		return &noopMailer{}
	}

	switch conf.Provider {
	case "ses":
		sesConf := conf.SES
		if sesConf == nil {
			sesConf = &config.MailerSESConfig{}
		}
		awsCfg := aws.Config{
			Region: sesConf.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(sesConf.AccessKeyID, sesConf.SecretAccessKey, ""),
			),
		}

		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: conf.FromAddress,
			fromName:    conf.FromName,
		}
	case "noop", "":
		return &noopMailer{}
	default:
		zap.L().Warn("unknown mailer provider, using noop", zap.String("provider", conf.Provider))
		return &noopMailer{}
	}
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (m *sesMailer) Send(ctx context.Context, msg Message) error {
	source := m.fromAddress
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    &types.Body{},
		},
	}
	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("m.client.SendEmail -> %w", err)
	}

	zap.L().Debug("email sent", zap.String("to", msg.To), zap.String("message_id", aws.ToString(result.MessageId)))

	return nil
}

type noopMailer struct{}

func (m *noopMailer) Send(_ context.Context, msg Message) error {
	zap.L().Info("email not sent (noop mailer)", zap.String("to", msg.To), zap.String("subject", msg.Subject))

	return nil
}
