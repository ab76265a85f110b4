package services

import (
	"testing"

	"github.com/Dias221467/LinguaConnect/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatServiceGetToken(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewChatService(provider)

	token, err := svc.GetToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-user-1", token)
}

func TestChatServiceGetTokenProviderFailure(t *testing.T) {
	svc := NewChatService(&fakeProvider{failing: true})

	_, err := svc.GetToken("user-1")
	assert.ErrorIs(t, err, apperrors.ErrExternalProvider)
}
