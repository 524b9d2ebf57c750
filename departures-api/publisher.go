package main

import (
	"context"
	"encoding/json"

	"github.com/TfGMEnterprise/departure-board/dlog"
	"github.com/TfGMEnterprise/departure-board/model"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/pkg/errors"
)

// SNSPublisher publishes every payload served to an SNS topic so that other
// displays can subscribe instead of polling.
type SNSPublisher struct {
	Logger      *dlog.Logger
	SNSClient   snsiface.SNSAPI
	SNSTopicARN *string
}

func (p *SNSPublisher) Publish(ctx context.Context, payload *model.DeparturePayload) error {
	p.Logger.Debug("Publish")

	departuresJSON, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "cannot marshal JSON from departures payload")
	}

	if _, err := p.SNSClient.PublishWithContext(ctx, &sns.PublishInput{
		Message:  aws.String(string(departuresJSON)),
		TopicArn: p.SNSTopicARN,
	}); err != nil {
		return errors.Wrapf(err, "cannot publish message to SNS topic `%s`", aws.StringValue(p.SNSTopicARN))
	}

	return nil
}
