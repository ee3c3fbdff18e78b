package errkind

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_TaggedWinsOverMessage(t *testing.T) {
	err := Wrap(KindExpired, errors.New("insufficient balance"))
	assert.Equal(t, KindExpired, Classify(err))
}

func TestClassify_TagSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("execute schedule: %w", New(KindAlreadyExecuted, "SCHEDULE_ALREADY_EXECUTED"))
	assert.Equal(t, KindAlreadyExecuted, Classify(err))
	assert.True(t, Is(err, KindAlreadyExecuted))
}

func TestClassify_MessageFallback(t *testing.T) {
	cases := map[string]Kind{
		"receipt: transaction already executed":   KindAlreadyExecuted,
		"INSUFFICIENT_PAYER_BALANCE":              KindInsufficientBalance,
		"TRANSACTION_EXPIRED":                     KindExpired,
		"failed to deserialize transaction":       KindInvalidFormat,
		"request timed out after 2m":              KindTimeout,
		"wallet not connected":                    KindMissingCredentials,
		"bridge returned non-JSON output: <html>": KindParse,
		"something odd happened":                  KindUnknown,
	}
	for msg, want := range cases {
		assert.Equal(t, want, Classify(errors.New(msg)), msg)
	}
}

func TestClassify_ContextDeadline(t *testing.T) {
	assert.Equal(t, KindTimeout, Classify(context.DeadlineExceeded))
	assert.Equal(t, KindTimeout, Classify(fmt.Errorf("query mirror: %w", context.DeadlineExceeded)))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(KindParse, nil))
}

func TestUserText_UnknownFallback(t *testing.T) {
	assert.Equal(t, "Transaction Failed", UserTitle(Kind("bogus")))
	assert.NotEmpty(t, UserMessage(Kind("bogus")))
	assert.Equal(t, "Already Executed", UserTitle(KindAlreadyExecuted))
}
