package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/search-team-api/internal/config"
	"github.com/search-team-api/internal/infrastructure/awsconf"
)

// maxSubjectLen is the SNS limit on the Subject parameter, in characters.
const maxSubjectLen = 100

type publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Gateway publishes notifications to an SNS topic. Subscribers (an email
// subscription or a mail worker) deliver them to the "to" addresses carried
// as a message attribute.
type Gateway struct {
	client   publisher
	topicARN string
}

func NewGateway(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	if cfg.SNSTopicARN == "" {
		return nil, errors.New("sns: SNS_TOPIC_ARN is not set")
	}
	awsCfg, err := awsconf.Load(ctx, cfg, cfg.SNSRegion)
	if err != nil {
		return nil, err
	}
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		o.BaseEndpoint = awsconf.Endpoint(cfg)
	})
	return &Gateway{client: client, topicARN: cfg.SNSTopicARN}, nil
}

func (g *Gateway) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return errors.New("sns: no recipients")
	}
	recipients, err := json.Marshal(to)
	if err != nil {
		return fmt.Errorf("sns: encode recipients: %w", err)
	}
	_, err = g.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(g.topicARN),
		Subject:  aws.String(truncate(subject, maxSubjectLen)),
		Message:  aws.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"to": {
				DataType:    aws.String("String.Array"),
				StringValue: aws.String(string(recipients)),
			},
		},
	})
	return err
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
