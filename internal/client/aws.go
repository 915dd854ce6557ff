package client

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// AuthOptions selects the AWS region and credentials used by the remote
// log sources.
type AuthOptions struct {
	Region  string
	Profile string
}

// NewConfigOptions translates AuthOptions into config load options.
// Rules:
// - a region is applied when set
// - the profile comes from Profile, falling back to AWS_PROFILE
// - without a profile, static keys from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY are used when both are set
// - otherwise the SDK default chain applies
func NewConfigOptions(o AuthOptions) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, config.WithRegion(o.Region))
	}
	profile := o.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if profile != "" {
		return append(opts, config.WithSharedConfigProfile(profile))
	}
	key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if key != "" && secret != "" {
		provider := credentials.NewStaticCredentialsProvider(key, secret, os.Getenv("AWS_SESSION_TOKEN"))
		opts = append(opts, config.WithCredentialsProvider(provider))
	}
	return opts
}

// LoadConfig loads the shared AWS configuration for o.
func LoadConfig(ctx context.Context, o AuthOptions) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, NewConfigOptions(o)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
