package parser

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
	mirrormocks "github.com/hashgraph-online/desktop-bridge/internal/mirror/mocks"
	parsermocks "github.com/hashgraph-online/desktop-bridge/internal/parser/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParseFromBytes_Normalizes(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	decoder.EXPECT().Validate(gomock.Any(), "CgYIABAAGgA=").Return(nil)
	decoder.EXPECT().
		Decode(gomock.Any(), "CgYIABAAGgA=").
		Return(json.RawMessage(`{"type":"CONSENSUSSUBMITMESSAGE"}`), nil)

	r := NewResolver(decoder, nil, slog.Default())
	parsed, err := r.ParseFromBytes(context.Background(), "CgYIABAAGgA=")
	require.NoError(t, err)

	assert.Equal(t, "CONSENSUSSUBMITMESSAGE", parsed.Type)
	assert.Equal(t, "Topic Message", parsed.HumanReadableType)
	require.NotNil(t, parsed.Transfers)
	require.NotNil(t, parsed.TokenTransfers)
	assert.Empty(t, parsed.Transfers)
}

func TestParseFromBytes_CoercesStringAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	decoder.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	decoder.EXPECT().Decode(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{
		"type": "CRYPTOTRANSFER",
		"transfers": [
			{"accountId": "0.0.5", "amount": "-1.5 ℏ", "isDecimal": true},
			{"accountId": "0.0.8", "amount": 1.5},
			{"accountId": "0.0.9", "amount": "not a number"}
		],
		"tokenTransfers": [
			{"tokenId": "0.0.42", "accountId": "0.0.5", "amount": "100"}
		]
	}`), nil)

	r := NewResolver(decoder, nil, slog.Default())
	parsed, err := r.ParseFromBytes(context.Background(), "bytes")
	require.NoError(t, err)

	require.Len(t, parsed.Transfers, 3)
	assert.Equal(t, -1.5, parsed.Transfers[0].Amount)
	assert.True(t, parsed.Transfers[0].IsDecimal)
	assert.Equal(t, 1.5, parsed.Transfers[1].Amount)
	assert.Equal(t, 0.0, parsed.Transfers[2].Amount)
	require.Len(t, parsed.TokenTransfers, 1)
	assert.Equal(t, 100.0, parsed.TokenTransfers[0].Amount)
}

func TestParseFromBytes_DecodeErrorTagged(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	decoder.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	decoder.EXPECT().Decode(gomock.Any(), gomock.Any()).
		Return(nil, errkind.New(errkind.KindParse, "bad protobuf"))

	r := NewResolver(decoder, nil, slog.Default())
	_, err := r.ParseFromBytes(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, errkind.KindParse, errkind.Classify(err))
}

func TestParseFromBytes_MalformedDecoderJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	decoder.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	decoder.EXPECT().Decode(gomock.Any(), gomock.Any()).
		Return(json.RawMessage(`{"type": 12`), nil)

	r := NewResolver(decoder, nil, slog.Default())
	_, err := r.ParseFromBytes(context.Background(), "bytes")
	require.Error(t, err)
	assert.Equal(t, errkind.KindParse, errkind.Classify(err))
}

func TestParseFromBytes_ValidationFailureSkipsDecode(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	decoder.EXPECT().Validate(gomock.Any(), "garbage").
		Return(errkind.New(errkind.KindInvalidFormat, "invalid transaction bytes"))
	decoder.EXPECT().Decode(gomock.Any(), gomock.Any()).Times(0)

	r := NewResolver(decoder, nil, slog.Default())
	_, err := r.ParseFromBytes(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, errkind.KindInvalidFormat, errkind.Classify(err))
}

func TestParseFromSchedule_CarriesMemo(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	querier := mirrormocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), "0.0.999", model.NetworkTestnet).
		Return(&model.ScheduleInfo{
			ScheduleID:      "0.0.999",
			TransactionBody: "CgYIABAAGgA=",
			Memo:            "pay rent",
		}, nil)
	decoder.EXPECT().
		Decode(gomock.Any(), "CgYIABAAGgA=").
		Return(json.RawMessage(`{"type":"CRYPTOTRANSFER"}`), nil)

	r := NewResolver(decoder, querier, slog.Default())
	parsed, err := r.ParseFromSchedule(context.Background(), "0.0.999", model.NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, "pay rent", parsed.Memo)
	assert.Equal(t, "HBAR Transfer", parsed.HumanReadableType)
}

func TestParseFromSchedule_DecodedMemoWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	decoder := parsermocks.NewMockDecoder(ctrl)
	querier := mirrormocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.ScheduleInfo{TransactionBody: "body", Memo: "schedule memo"}, nil)
	decoder.EXPECT().Decode(gomock.Any(), "body").
		Return(json.RawMessage(`{"type":"CRYPTOTRANSFER","memo":"inner memo"}`), nil)

	r := NewResolver(decoder, querier, slog.Default())
	parsed, err := r.ParseFromSchedule(context.Background(), "0.0.999", model.NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, "inner memo", parsed.Memo)
}

func TestParseFromSchedule_MirrorErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetScheduleInfo(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mirror http status 503"))

	r := NewResolver(parsermocks.NewMockDecoder(ctrl), querier, slog.Default())
	_, err := r.ParseFromSchedule(context.Background(), "0.0.999", model.NetworkMainnet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 42.5, 42.5},
		{"plain string", "100", 100},
		{"currency string", "1,234.5 HBAR", 1234.5},
		{"negative string", "-7", -7},
		{"garbage", "n/a", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceAmount(tt.in))
		})
	}
}
