package claude

import (
	"context"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessenger struct {
	lastParams sdk.MessageNewParams
	reply      string
	err        error
}

func (s *stubMessenger) New(_ context.Context, params sdk.MessageNewParams, _ ...option.RequestOption) (*sdk.Message, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return &sdk.Message{
		Content: []sdk.ContentBlockUnion{{Type: "text", Text: s.reply}},
	}, nil
}

func newStubbed(reply string, err error) (*stubMessenger, Client) {
	stub := &stubMessenger{reply: reply, err: err}
	return stub, NewClient("test-key", WithMessenger(stub), WithModel("test-model"))
}

func TestSummarize(t *testing.T) {
	stub, c := newStubbed("Acme builds anvils and ships them worldwide.", nil)

	out, err := c.Summarize(context.Background(), "- Acme ships anvils", 120, 150)
	require.NoError(t, err)
	assert.Equal(t, "Acme builds anvils and ships them worldwide.", out)
	assert.Equal(t, sdk.Model("test-model"), stub.lastParams.Model)
}

func TestSummarize_Error(t *testing.T) {
	_, c := newStubbed("", eris.New("api down"))
	_, err := c.Summarize(context.Background(), "material", 0, 0)
	require.Error(t, err)
}

func TestClassifyLabel_OnList(t *testing.T) {
	_, c := newStubbed("  tech ", nil)
	got, err := c.ClassifyLabel(context.Background(), "acme cloud software", []string{"Tech", "Retail", "Other"})
	require.NoError(t, err)
	assert.Equal(t, "Tech", got, "case-insensitive match maps to canonical label")
}

func TestClassifyLabel_OffList(t *testing.T) {
	_, c := newStubbed("Purple", nil)
	got, err := c.ClassifyLabel(context.Background(), "whatever", []string{"Tech", "Retail", "Other"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("")
	s, err := c.Summarize(context.Background(), "x", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	l, err := c.ClassifyLabel(context.Background(), "x", []string{"Tech"})
	require.NoError(t, err)
	assert.Equal(t, "", l)
}
