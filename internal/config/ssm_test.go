package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fargate-labs/greeter/internal/config"
)

// fakeSSM serves canned GetParametersByPath pages.
type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func param(name, value string) ssmtypes.Parameter {
	return ssmtypes.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestSSMOverlayApplies(t *testing.T) {
	t.Setenv("SSM_PREFIX", "/greeter-test")

	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{{
		Parameters: []ssmtypes.Parameter{
			param("/greeter-test/greeter/message", "hello from ssm"),
			param("/greeter-test/log_level", "warn"),
		},
	}}}

	cfg, err := config.LoadWithSSM(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, "hello from ssm", cfg.Greeter.Message)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestSSMOverlayPaginates(t *testing.T) {
	t.Setenv("SSM_PREFIX", "/greeter-test")

	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []ssmtypes.Parameter{param("/greeter-test/greeter/message", "page one")},
			NextToken:  aws.String("more"),
		},
		{
			Parameters: []ssmtypes.Parameter{param("/greeter-test/greeter/http_port", "8081")},
		},
	}}

	cfg, err := config.LoadWithSSM(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, "page one", cfg.Greeter.Message)
	assert.Equal(t, 8081, cfg.Greeter.HTTPPort)
	assert.Equal(t, 2, client.calls)
}

func TestEnvWinsOverSSM(t *testing.T) {
	t.Setenv("SSM_PREFIX", "/greeter-test")
	t.Setenv("GREETER_MESSAGE", "hello from env")

	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{{
		Parameters: []ssmtypes.Parameter{param("/greeter-test/greeter/message", "hello from ssm")},
	}}}

	cfg, err := config.LoadWithSSM(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, "hello from env", cfg.Greeter.Message)
}

func TestSSMFetchFailureIsFatal(t *testing.T) {
	t.Setenv("SSM_PREFIX", "/greeter-test")

	client := &fakeSSM{err: errors.New("access denied")}

	_, err := config.LoadWithSSM(context.Background(), client)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch ssm parameters")
}

func TestNoPrefixSkipsSSM(t *testing.T) {
	t.Setenv("SSM_PREFIX", "")

	// A client that would fail if called: proves the overlay is skipped.
	client := &fakeSSM{err: errors.New("should not be called")}

	cfg, err := config.LoadWithSSM(context.Background(), client)

	require.NoError(t, err)
	assert.Equal(t, 0, client.calls)
	assert.NotNil(t, cfg)
}
