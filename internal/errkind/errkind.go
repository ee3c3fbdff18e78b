package errkind

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Kind is a structured error category carried end-to-end from the execution
// layer so that upper layers never have to pattern-match error prose.
type Kind string

const (
	KindAlreadyExecuted     Kind = "already_executed"
	KindInsufficientBalance Kind = "insufficient_balance"
	KindExpired             Kind = "expired"
	KindInvalidFormat       Kind = "invalid_format"
	KindTimeout             Kind = "timeout"
	KindMissingCredentials  Kind = "missing_credentials"
	KindParse               Kind = "parse"
	KindUnknown             Kind = "unknown"
)

type taggedError struct {
	err  error
	kind Kind
}

func (e *taggedError) Error() string {
	return e.err.Error()
}

func (e *taggedError) Unwrap() error {
	return e.err
}

// Wrap tags err with a kind. A nil err stays nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, kind: kind}
}

// New creates a tagged error from a message.
func New(kind Kind, msg string) error {
	return &taggedError{err: errors.New(msg), kind: kind}
}

// Classify returns the kind for an error. Tagged errors win; untagged errors
// fall back to message-token matching because error strings from foreign
// wallet hosts cross the bridge as plain text.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var tagged *taggedError
	if errors.As(err, &tagged) {
		return tagged.kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	lower := strings.ToLower(err.Error())
	for _, entry := range messageTokens {
		for _, token := range entry.tokens {
			if strings.Contains(lower, token) {
				return entry.kind
			}
		}
	}
	return KindUnknown
}

// Is reports whether err classifies as kind.
func Is(err error, kind Kind) bool {
	return err != nil && Classify(err) == kind
}

// messageTokens is checked in order; more specific kinds come first so a
// message matching several categories classifies consistently.
var messageTokens = []struct {
	kind   Kind
	tokens []string
}{
	{KindAlreadyExecuted, []string{
		"already executed",
		"schedule_already_executed",
		"duplicate transaction",
	}},
	{KindInsufficientBalance, []string{
		"insufficient balance",
		"insufficient payer balance",
		"insufficient_payer_balance",
		"insufficient account balance",
	}},
	{KindExpired, []string{
		"expired",
		"transaction_expired",
		"invalid_transaction_start",
	}},
	{KindMissingCredentials, []string{
		"no credentials",
		"missing credentials",
		"operator not configured",
		"wallet not connected",
	}},
	{KindParse, []string{
		"parse error",
		"non-json output",
	}},
	{KindInvalidFormat, []string{
		"invalid format",
		"malformed",
		"failed to deserialize",
		"invalid transaction body",
	}},
	{KindTimeout, []string{
		"timeout",
		"timed out",
		"deadline exceeded",
		"unavailable",
		"connection refused",
		"connection reset",
	}},
}

// userText maps each kind to the title and message shown to the user when
// an approval attempt surfaces that kind.
var userText = map[Kind][2]string{
	KindAlreadyExecuted:     {"Already Executed", "This transaction has already been executed."},
	KindInsufficientBalance: {"Insufficient Balance", "The paying account does not have enough balance to execute this transaction."},
	KindExpired:             {"Transaction Expired", "This transaction expired before it could be executed."},
	KindInvalidFormat:       {"Invalid Transaction", "The transaction is malformed and cannot be executed."},
	KindTimeout:             {"Network Error", "The network request timed out. Please try again."},
	KindMissingCredentials:  {"Wallet Not Connected", "Connect a wallet or configure an operator account before approving."},
	KindParse:               {"Details Unavailable", "The transaction could not be decoded. You can still approve or reject it."},
	KindUnknown:             {"Transaction Failed", "The transaction could not be executed. Please try again."},
}

// UserTitle returns the notification title for a kind.
func UserTitle(kind Kind) string {
	if text, ok := userText[kind]; ok {
		return text[0]
	}
	return userText[KindUnknown][0]
}

// UserMessage returns the notification body for a kind.
func UserMessage(kind Kind) string {
	if text, ok := userText[kind]; ok {
		return text[1]
	}
	return userText[KindUnknown][1]
}
