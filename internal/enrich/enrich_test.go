package enrich

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/hashgraph-online/desktop-bridge/internal/mirror"
	mirrormocks "github.com/hashgraph-online/desktop-bridge/internal/mirror/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig() Config {
	return Config{SettleDelay: time.Millisecond, Timeout: time.Second}
}

func preParse() *model.ParsedTransaction {
	p := &model.ParsedTransaction{
		Type: model.TxTypeCryptoTransfer,
		Memo: "user description",
		Details: map[string]any{
			"source": "agent",
		},
	}
	p.Normalize()
	return p
}

func TestEnrich_MergesMirrorRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		GetTransaction(gomock.Any(), "0.0.5-1700000000-123456789", model.NetworkTestnet).
		Return(&mirror.Transaction{
			TransactionID:      "0.0.5-1700000000-123456789",
			Name:               model.TxTypeCryptoTransfer,
			Result:             "SUCCESS",
			ConsensusTimestamp: "1700000002.000000000",
			ChargedTxFee:       183926,
			Transfers: []mirror.Transfer{
				{Account: "0.0.5", Amount: -100000000},
				{Account: "0.0.8", Amount: 100000000},
			},
		}, nil)

	p := NewPipeline(querier, fastConfig(), testLogger())
	res := p.Enrich(context.Background(), "0.0.5@1700000000.123456789", model.NetworkTestnet, preParse())

	require.True(t, res.Enriched)
	tx := res.Transaction
	assert.Equal(t, "SUCCESS", tx.Details["result"])
	assert.Equal(t, int64(183926), tx.Details["chargedFee"])
	assert.Equal(t, "agent", tx.Details["source"], "pre-execution details survive the merge")
	assert.Equal(t, "user description", tx.Memo, "memo the mirror never returns is preserved")
	require.Len(t, tx.Transfers, 2)
	assert.Contains(t, res.Message, "1.00000000")
}

func TestEnrich_TimeoutReturnsPreUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	// settle delay longer than the deadline: the mirror is never queried

	p := NewPipeline(querier, Config{SettleDelay: time.Second, Timeout: 10 * time.Millisecond}, testLogger())
	pre := preParse()
	res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, pre)

	assert.False(t, res.Enriched)
	assert.Same(t, pre, res.Transaction)
	assert.Contains(t, res.Message, "HBAR Transfer completed")
}

func TestEnrich_RecordNotMaterialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	p := NewPipeline(querier, fastConfig(), testLogger())
	pre := preParse()
	res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, pre)

	assert.False(t, res.Enriched)
	assert.Same(t, pre, res.Transaction)
}

func TestEnrich_MirrorErrorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mirror http status 502"))

	p := NewPipeline(querier, fastConfig(), testLogger())
	res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, preParse())
	assert.False(t, res.Enriched)
}

func TestEnrich_TokenCreationLooksUpTokenOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		GetTransaction(gomock.Any(), gomock.Any(), model.NetworkTestnet).
		Return(&mirror.Transaction{
			Name:     model.TxTypeTokenCreation,
			Result:   "SUCCESS",
			EntityID: "0.0.4242",
		}, nil).
		Times(2)
	// second enrichment hits the LRU
	querier.EXPECT().
		GetTokenInfo(gomock.Any(), "0.0.4242", model.NetworkTestnet).
		Return(&mirror.TokenInfo{TokenID: "0.0.4242", Name: "Demo", Symbol: "DMO", Decimals: "8"}, nil).
		Times(1)

	p := NewPipeline(querier, fastConfig(), testLogger())

	for i := 0; i < 2; i++ {
		res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, &model.ParsedTransaction{Type: model.TxTypeTokenCreation})
		require.True(t, res.Enriched)
		assert.Equal(t, "0.0.4242", res.Transaction.Details["createdTokenId"])
		assert.Equal(t, "DMO", res.Transaction.Details["tokenSymbol"])
		assert.Equal(t, "Token Demo (DMO) created as 0.0.4242", res.Message)
	}
}

func TestEnrich_UnknownTypeDefaultMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mirror.Transaction{Name: "FREEZE", Result: "SUCCESS"}, nil)

	p := NewPipeline(querier, fastConfig(), testLogger())
	res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, &model.ParsedTransaction{Type: "FREEZE"})

	require.True(t, res.Enriched)
	assert.Equal(t, "FREEZE completed", res.Message)
}

func TestEnrich_CustomHandlerOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mirrormocks.NewMockQuerier(ctrl)
	querier.EXPECT().
		GetTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mirror.Transaction{Name: model.TxTypeConsensusSubmit, EntityID: "0.0.777"}, nil)

	p := NewPipeline(querier, fastConfig(), testLogger())
	p.Register(model.TxTypeConsensusSubmit, func(_ context.Context, _ Env, _ model.Network, tx *model.ParsedTransaction) string {
		return "custom: " + tx.Details["entityId"].(string)
	})

	res := p.Enrich(context.Background(), "0.0.5@1700.123", model.NetworkTestnet, &model.ParsedTransaction{})
	assert.Equal(t, "custom: 0.0.777", res.Message)
}

func TestMerge_KeepsDecoderLabelForUnmappedType(t *testing.T) {
	pre := &model.ParsedTransaction{Type: "TOKENUPDATE", HumanReadableType: "Token Update"}
	pre.Normalize()

	merged := merge(pre, &mirror.Transaction{
		Name:   "TOKENUPDATE",
		Result: "SUCCESS",
	})
	assert.Equal(t, "Token Update", merged.HumanReadableType,
		"display label from the decoder must survive the merge")
}

func TestMerge_TypeChangeRegeneratesLabel(t *testing.T) {
	pre := &model.ParsedTransaction{Type: model.TxTypeScheduleCreate, HumanReadableType: "Schedule Create"}
	pre.Normalize()

	merged := merge(pre, &mirror.Transaction{Name: "FREEZE"})
	assert.Equal(t, "FREEZE", merged.HumanReadableType,
		"a stale label must not describe a different kind")
}

func TestMerge_DecodesMemo(t *testing.T) {
	pre := &model.ParsedTransaction{Memo: "fallback"}
	pre.Normalize()

	merged := merge(pre, &mirror.Transaction{
		Name:       model.TxTypeCryptoTransfer,
		MemoBase64: "cGF5IHJlbnQ=",
	})
	assert.Equal(t, "pay rent", merged.Memo)
}
