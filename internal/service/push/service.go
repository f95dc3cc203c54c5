package push

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"griya-properti/internal/config"
)

type Service interface {
	SendPush(ctx context.Context, userID uuid.UUID, title, message string) error
}

type service struct {
	client   *sns.Client
	topicARN string
}

// NewService builds an SNS-backed push sender. When no topic is
// configured the sender degrades to a no-op so notification dispatch
// keeps working in environments without a push provider.
func NewService(ctx context.Context, cfg *config.Config) Service {
	if cfg.PushTopicARN == "" {
		log.Println("PUSH_TOPIC_ARN not set, push notifications are disabled")
		return &service{}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Printf("Warning: failed to load AWS config: %v (push notifications are disabled)", err)
		return &service{}
	}

	return &service{
		client:   sns.NewFromConfig(awsCfg),
		topicARN: cfg.PushTopicARN,
	}
}

type pushPayload struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *service) SendPush(ctx context.Context, userID uuid.UUID, title, message string) error {
	if s.client == nil {
		return nil
	}

	payload, err := json.Marshal(pushPayload{
		UserID:  userID.String(),
		Title:   title,
		Message: message,
	})
	if err != nil {
		return err
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(payload)),
	})
	return err
}
