package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/fargate-labs/greeter/internal/domain"
)

// SSMClient is the narrow Parameter Store surface the loader needs.
// *ssm.Client satisfies it.
type SSMClient interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func newSSMClient(ctx context.Context, region string) (SSMClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// fetchParameters loads all parameters under prefix and returns them as
// koanf keys: /greeter-prod/greeter/message → greeter.message.
// Any fetch failure is fatal to startup; there is no partial fallback.
func fetchParameters(ctx context.Context, client SSMClient, prefix string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.SSMFetchTimeout)
	defer cancel()

	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/")

	out := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch ssm parameters under %q: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := paramToKey(prefix, aws.ToString(p.Name))
			if key == "" {
				continue
			}
			out[key] = aws.ToString(p.Value)
		}
	}
	return out, nil
}

func paramToKey(prefix, name string) string {
	rel := strings.TrimPrefix(name, prefix)
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return ""
	}
	return strings.ReplaceAll(rel, "/", ".")
}
