package sns

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func TestGateway_PublishesToTopic(t *testing.T) {
	pub := &mockPublisher{}
	var got *sns.PublishInput
	pub.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*sns.PublishInput) }).
		Return(&sns.PublishOutput{}, nil)
	g := &Gateway{client: pub, topicARN: "arn:aws:sns:us-east-1:000000000000:mail"}

	err := g.Send(context.Background(), []string{"a@example.com", "b@example.com"}, "password change", "code")

	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:mail", *got.TopicArn)
	assert.Equal(t, "code", *got.Message)
	assert.Equal(t, `["a@example.com","b@example.com"]`, *got.MessageAttributes["to"].StringValue)
}

func TestGateway_TruncatesSubject(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return len(*in.Subject) == maxSubjectLen
	})).Return(&sns.PublishOutput{}, nil)
	g := &Gateway{client: pub, topicARN: "arn"}

	require.NoError(t, g.Send(context.Background(), []string{"a@example.com"}, strings.Repeat("s", 150), "b"))
	pub.AssertExpectations(t)
}

func TestGateway_RecipientsAreValidJSON(t *testing.T) {
	pub := &mockPublisher{}
	var got *sns.PublishInput
	pub.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*sns.PublishInput) }).
		Return(&sns.PublishOutput{}, nil)
	g := &Gateway{client: pub, topicARN: "arn"}
	to := []string{`"odd,name"@example.com`, `back\slash@example.com`}

	require.NoError(t, g.Send(context.Background(), to, "s", "b"))

	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(*got.MessageAttributes["to"].StringValue), &decoded))
	assert.Equal(t, to, decoded)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "héllo", 10, "héllo"},
		{"exact", "héllo", 5, "héllo"},
		{"multibyte cut", "ääää", 3, "äää"},
		{"ascii", strings.Repeat("s", 150), maxSubjectLen, strings.Repeat("s", maxSubjectLen)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.n)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestGateway_MultibyteSubjectStaysValid(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return utf8.ValidString(*in.Subject) && utf8.RuneCountInString(*in.Subject) == maxSubjectLen
	})).Return(&sns.PublishOutput{}, nil)
	g := &Gateway{client: pub, topicARN: "arn"}

	require.NoError(t, g.Send(context.Background(), []string{"a@example.com"}, "s"+strings.Repeat("€", 120), "b"))
	pub.AssertExpectations(t)
}

func TestGateway_Errors(t *testing.T) {
	pub := &mockPublisher{}
	boom := errors.New("AuthorizationError")
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil, boom)
	g := &Gateway{client: pub, topicARN: "arn"}

	assert.ErrorIs(t, g.Send(context.Background(), []string{"a@example.com"}, "s", "b"), boom)
	assert.Error(t, g.Send(context.Background(), nil, "s", "b"))
}
