package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeChannel(t *testing.T) {
	require.Equal(t, ChannelEFT, NormalizeChannel("eft"))
	require.Equal(t, ChannelFastpay, NormalizeChannel("fastpay"))
	require.Equal(t, ChannelFastpay, NormalizeChannel(""))
	require.Equal(t, ChannelFastpay, NormalizeChannel("EFT"))
	require.Equal(t, ChannelFastpay, NormalizeChannel("card"))
}

func TestRedirectCreateIntent(t *testing.T) {
	provider := Redirect{}

	resp, err := provider.CreateIntent(context.Background(), IntentRequest{OrderID: "abc-123", Amount: 316})
	require.NoError(t, err)
	require.Equal(t, "redirect", resp.Provider)
	require.Equal(t, "/checkout/success?order=abc-123", resp.RedirectURL)
}

func TestRedirectCustomSuccessPath(t *testing.T) {
	provider := Redirect{SuccessPath: "/thanks"}

	resp, err := provider.CreateIntent(context.Background(), IntentRequest{OrderID: "abc-123"})
	require.NoError(t, err)
	require.Equal(t, "/thanks?order=abc-123", resp.RedirectURL)
}
