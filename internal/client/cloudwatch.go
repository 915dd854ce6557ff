package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// LogsAPI is the subset of the CloudWatch Logs API used to read shipped job logs.
type LogsAPI interface {
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// CloudWatchClient reads daily job logs shipped to a CloudWatch log group,
// one log stream per day, one event per log line.
type CloudWatchClient struct {
	client LogsAPI
}

// NewCloudWatchClient loads AWS configuration for o and returns a client
// backed by CloudWatch Logs.
func NewCloudWatchClient(ctx context.Context, o AuthOptions) (*CloudWatchClient, error) {
	cfg, err := LoadConfig(ctx, o)
	if err != nil {
		return nil, err
	}
	return &CloudWatchClient{client: cloudwatchlogs.NewFromConfig(cfg)}, nil
}

// NewCloudWatchClientFromAPI wraps an existing API implementation.
func NewCloudWatchClientFromAPI(api LogsAPI) *CloudWatchClient {
	return &CloudWatchClient{client: api}
}

// ListStreams returns the names of the streams in group starting with prefix.
func (c *CloudWatchClient) ListStreams(ctx context.Context, group, prefix string) ([]string, error) {
	var names []string
	var next *string
	for {
		in := &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName: aws.String(group),
			NextToken:    next,
		}
		if prefix != "" {
			in.LogStreamNamePrefix = aws.String(prefix)
		}
		out, err := c.client.DescribeLogStreams(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, s := range out.LogStreams {
			if name := aws.ToString(s.LogStreamName); name != "" {
				names = append(names, name)
			}
		}
		if out.NextToken == nil || (next != nil && aws.ToString(out.NextToken) == aws.ToString(next)) {
			break
		}
		next = out.NextToken
	}
	return names, nil
}

// StreamLines returns the messages of one stream in order, one per log line.
func (c *CloudWatchClient) StreamLines(ctx context.Context, group, stream string) ([]string, error) {
	var lines []string
	var next *string
	for {
		out, err := c.client.FilterLogEvents(ctx, &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName:   aws.String(group),
			LogStreamNames: []string{stream},
			NextToken:      next,
		})
		if err != nil {
			return nil, err
		}
		for _, e := range out.Events {
			lines = append(lines, aws.ToString(e.Message))
		}
		if out.NextToken == nil || (next != nil && aws.ToString(out.NextToken) == aws.ToString(next)) {
			break
		}
		next = out.NextToken
	}
	return lines, nil
}
